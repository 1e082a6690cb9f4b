package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

type WithdrawalDeleteService interface {
	RequesterDelete(ctx context.Context, recordID, requesterID string) (vo.WithdrawalMutation, error)
}

type WithdrawalDeleteHandler struct {
	service WithdrawalDeleteService
	logger  *slog.Logger
}

func NewWithdrawalDeleteHandler(service WithdrawalDeleteService, logger *slog.Logger) *WithdrawalDeleteHandler {
	return &WithdrawalDeleteHandler{service: service, logger: logger}
}

func (h *WithdrawalDeleteHandler) Register(router fiber.Router) {
	router.Delete("/withdrawals/:id", h.Handle)
}

func (h *WithdrawalDeleteHandler) Handle(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authenticated user"})
	}

	result, err := h.service.RequesterDelete(c.Context(), c.Params("id"), userID)
	if err != nil {
		if status, message := ledgerErrorStatus(err); status != 0 {
			return c.Status(status).JSON(fiber.Map{"error": message})
		}
		h.logger.Error("failed to delete withdrawal", "user_id", userID, "record_id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

type WithdrawalQueryService interface {
	GetWithdrawal(ctx context.Context, recordID, callerID string, isAdmin bool) (vo.WithdrawalView, error)
	ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter, callerID string, isAdmin bool) (vo.WithdrawalList, error)
	GetBalance(ctx context.Context, userID string) (vo.BalanceInquiry, error)
}

type WithdrawalQueryHandler struct {
	service WithdrawalQueryService
	logger  *slog.Logger
}

func NewWithdrawalQueryHandler(service WithdrawalQueryService, logger *slog.Logger) *WithdrawalQueryHandler {
	return &WithdrawalQueryHandler{service: service, logger: logger}
}

func (h *WithdrawalQueryHandler) Register(router fiber.Router) {
	router.Get("/withdrawals", h.HandleList)
	router.Get("/withdrawals/:id", h.HandleGet)
	router.Get("/balance", h.HandleBalance)
}

func (h *WithdrawalQueryHandler) HandleList(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authenticated user"})
	}

	filter, err := withdrawalFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status filter"})
	}

	result, listErr := h.service.ListWithdrawals(c.Context(), filter, userID, isAdmin(c))
	if listErr != nil {
		if status, message := ledgerErrorStatus(listErr); status != 0 {
			return c.Status(status).JSON(fiber.Map{"error": message})
		}
		h.logger.Error("failed to list withdrawals", "user_id", userID, "error", listErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *WithdrawalQueryHandler) HandleGet(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authenticated user"})
	}

	result, err := h.service.GetWithdrawal(c.Context(), c.Params("id"), userID, isAdmin(c))
	if err != nil {
		if status, message := ledgerErrorStatus(err); status != 0 {
			return c.Status(status).JSON(fiber.Map{"error": message})
		}
		h.logger.Error("failed to get withdrawal", "user_id", userID, "record_id", c.Params("id"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *WithdrawalQueryHandler) HandleBalance(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authenticated user"})
	}

	result, err := h.service.GetBalance(c.Context(), userID)
	if err != nil {
		if status, message := ledgerErrorStatus(err); status != 0 {
			return c.Status(status).JSON(fiber.Map{"error": message})
		}
		h.logger.Error("failed to get balance", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func withdrawalFilterFromQuery(c fiber.Ctx) (domain.WithdrawalFilter, error) {
	filter := domain.WithdrawalFilter{
		Limit:  fiber.Query(c, "limit", 20),
		Offset: fiber.Query(c, "offset", 0),
	}

	if statusValue := strings.TrimSpace(c.Query("status")); statusValue != "" {
		status, err := domain.ParseWithdrawalStatus(statusValue)
		if err != nil {
			return domain.WithdrawalFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

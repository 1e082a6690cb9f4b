package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

type WithdrawalRequestService interface {
	RequestWithdrawal(ctx context.Context, userID, accountHolderName, bankName, iban string, amount decimal.Decimal) (vo.WithdrawalMutation, error)
}

type WithdrawalRequestHandler struct {
	service WithdrawalRequestService
	logger  *slog.Logger
}

type withdrawalRequest struct {
	AccountHolderName string          `json:"account_holder_name"`
	BankName          string          `json:"bank_name"`
	IBAN              string          `json:"iban"`
	Amount            decimal.Decimal `json:"amount"`
}

func NewWithdrawalRequestHandler(service WithdrawalRequestService, logger *slog.Logger) *WithdrawalRequestHandler {
	return &WithdrawalRequestHandler{service: service, logger: logger}
}

func (h *WithdrawalRequestHandler) Register(router fiber.Router) {
	router.Post("/withdrawals", h.Handle)
}

func (h *WithdrawalRequestHandler) Handle(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing authenticated user",
		})
	}

	var requestBody withdrawalRequest
	if err := c.Bind().JSON(&requestBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if strings.TrimSpace(requestBody.AccountHolderName) == "" ||
		strings.TrimSpace(requestBody.BankName) == "" ||
		strings.TrimSpace(requestBody.IBAN) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "account_holder_name, bank_name and iban are required",
		})
	}

	result, err := h.service.RequestWithdrawal(c.Context(), userID,
		requestBody.AccountHolderName, requestBody.BankName, requestBody.IBAN, requestBody.Amount)
	if err != nil {
		if status, message := ledgerErrorStatus(err); status != 0 {
			return c.Status(status).JSON(fiber.Map{"error": message})
		}
		h.logger.Error("failed to request withdrawal", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

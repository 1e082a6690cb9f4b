package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// ledgerErrorStatus maps the workflow's sentinel errors onto HTTP statuses.
// A zero status means the error is not a workflow failure and the caller
// should log it and answer 500.
func ledgerErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, vo.ErrInvalidAmount):
		return fiber.StatusBadRequest, "amount must be greater than 0"
	case errors.Is(err, vo.ErrBelowMinimum):
		return fiber.StatusBadRequest, "amount is below the minimum withdrawal"
	case errors.Is(err, vo.ErrMissingRoutingInfo):
		return fiber.StatusBadRequest, "routing_number and routing_date are required"
	case errors.Is(err, vo.ErrMissingPayoutDetails):
		return fiber.StatusBadRequest, "account_holder_name, bank_name and iban are required"
	case errors.Is(err, vo.ErrForbidden):
		return fiber.StatusForbidden, "forbidden"
	case errors.Is(err, vo.ErrRecordNotFound):
		return fiber.StatusNotFound, "withdrawal record not found"
	case errors.Is(err, vo.ErrLedgerNotFound):
		return fiber.StatusNotFound, "user ledger not found"
	case errors.Is(err, vo.ErrInsufficientBalance):
		return fiber.StatusConflict, "insufficient balance"
	case errors.Is(err, vo.ErrInvalidTransition):
		return fiber.StatusConflict, "action not allowed in the record's current state"
	case errors.Is(err, vo.ErrConflict):
		return fiber.StatusConflict, "the record was updated concurrently, retry"
	case errors.Is(err, vo.ErrQuotaExhausted):
		return fiber.StatusTooManyRequests, "monthly withdrawal quota exhausted"
	default:
		return 0, ""
	}
}

func authenticatedUserID(c fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}

func isAdmin(c fiber.Ctx) bool {
	role, ok := c.Locals("role").(string)
	return ok && role == "admin"
}

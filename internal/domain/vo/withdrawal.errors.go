package vo

import "errors"

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrBelowMinimum         = errors.New("amount below minimum withdrawal")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrQuotaExhausted       = errors.New("monthly withdrawal quota exhausted")
	ErrInvalidTransition    = errors.New("invalid withdrawal transition")
	ErrMissingRoutingInfo   = errors.New("routing number and routing date are required")
	ErrMissingPayoutDetails = errors.New("account holder name, bank name and iban are required")
	ErrRecordNotFound       = errors.New("withdrawal record not found")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("concurrent update conflict")

	ErrLedgerNotFound     = errors.New("user ledger not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

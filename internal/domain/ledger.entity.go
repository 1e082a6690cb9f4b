package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserLedger is a seller's earnings state: the balance available to withdraw
// and the withdrawal attempts remaining in the current calendar month.
// The monthly reset of WithdrawalTimes is maintained externally; this core
// only reads and decrements it.
type UserLedger struct {
	UserID          string
	Balance         decimal.Decimal
	WithdrawalTimes int
	UpdatedAt       time.Time
}

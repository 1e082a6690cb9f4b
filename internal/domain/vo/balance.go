package vo

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceInquiry reports a seller's withdrawable balance and the withdrawal
// attempts left this month.
type BalanceInquiry struct {
	UserID          string          `json:"user_id"`
	Balance         decimal.Decimal `json:"balance"`
	WithdrawalTimes int             `json:"withdrawal_times"`
	Currency        string          `json:"currency"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

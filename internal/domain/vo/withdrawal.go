package vo

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalView is the outbound representation of a withdrawal record.
type WithdrawalView struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	AccountHolderName string           `json:"account_holder_name"`
	BankName          string           `json:"bank_name"`
	IBAN              string           `json:"iban"`
	Amount            decimal.Decimal  `json:"amount"`
	Status            string           `json:"status"`
	AdminNotes        string           `json:"admin_notes,omitempty"`
	RoutingNumber     string           `json:"routing_number,omitempty"`
	RoutingDate       *time.Time       `json:"routing_date,omitempty"`
	Fees              *FeeBreakdownView `json:"fees,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// FeeBreakdownView is present only on completed withdrawals.
type FeeBreakdownView struct {
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	NetPayout     decimal.Decimal `json:"net_payout"`
}

// WithdrawalMutation pairs the updated record with a human-readable status
// message for the calling UI.
type WithdrawalMutation struct {
	Message    string         `json:"message"`
	Withdrawal WithdrawalView `json:"withdrawal"`
}

// WithdrawalList is a paginated admin or requester listing.
type WithdrawalList struct {
	Withdrawals []WithdrawalView `json:"withdrawals"`
	Total       int              `json:"total"`
	Limit       int              `json:"limit"`
	Offset      int              `json:"offset"`
}

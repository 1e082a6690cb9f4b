package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// WithdrawalStatus is the closed set of states a withdrawal moves through.
// Transitions are forward-only; rejected and completed are terminal.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalAccepted  WithdrawalStatus = "accepted"
	WithdrawalRejected  WithdrawalStatus = "rejected"
	WithdrawalCompleted WithdrawalStatus = "completed"
)

var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalPending:  {WithdrawalAccepted, WithdrawalRejected},
	WithdrawalAccepted: {WithdrawalCompleted, WithdrawalRejected},
}

// ParseWithdrawalStatus maps a stored status string onto the enum.
// Unknown strings are rejected so no unrecognized status ever reaches
// the transition table.
func ParseWithdrawalStatus(value string) (WithdrawalStatus, error) {
	status := WithdrawalStatus(strings.TrimSpace(strings.ToLower(value)))
	switch status {
	case WithdrawalPending, WithdrawalAccepted, WithdrawalRejected, WithdrawalCompleted:
		return status, nil
	default:
		return "", vo.ErrInvalidTransition
	}
}

func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalRejected || s == WithdrawalCompleted
}

func (s WithdrawalStatus) CanTransitionTo(target WithdrawalStatus) bool {
	for _, allowed := range withdrawalTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// WithdrawalRecord is one request by a seller to cash out accumulated balance.
type WithdrawalRecord struct {
	ID                string
	UserID            string
	AccountHolderName string
	BankName          string
	IBAN              string
	Amount            decimal.Decimal
	Status            WithdrawalStatus
	AdminNotes        string
	RoutingNumber     string
	RoutingDate       *time.Time
	Fees              *FeeBreakdown
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Accept moves a pending record to accepted. The reserved balance stays held.
func (r *WithdrawalRecord) Accept(now time.Time) error {
	if !r.Status.CanTransitionTo(WithdrawalAccepted) {
		return vo.ErrInvalidTransition
	}
	r.Status = WithdrawalAccepted
	r.UpdatedAt = now
	return nil
}

// Reject moves a pending or accepted record to rejected. The caller is
// responsible for crediting the reserved amount back; the consumed quota
// attempt is not restored.
func (r *WithdrawalRecord) Reject(now time.Time) error {
	if !r.Status.CanTransitionTo(WithdrawalRejected) {
		return vo.ErrInvalidTransition
	}
	r.Status = WithdrawalRejected
	r.UpdatedAt = now
	return nil
}

// Complete moves an accepted record to completed, attaching the payout routing
// details and the fee breakdown kept for audit. Both routing fields are
// required.
func (r *WithdrawalRecord) Complete(routingNumber string, routingDate time.Time, fees FeeBreakdown, now time.Time) error {
	if !r.Status.CanTransitionTo(WithdrawalCompleted) {
		return vo.ErrInvalidTransition
	}
	if strings.TrimSpace(routingNumber) == "" || routingDate.IsZero() {
		return vo.ErrMissingRoutingInfo
	}
	r.Status = WithdrawalCompleted
	r.RoutingNumber = strings.TrimSpace(routingNumber)
	r.RoutingDate = &routingDate
	r.Fees = &fees
	r.UpdatedAt = now
	return nil
}

// SetAdminNotes overwrites the administrator notes. Allowed in any state,
// terminal ones included; notes never affect balance.
func (r *WithdrawalRecord) SetAdminNotes(note string, now time.Time) {
	r.AdminNotes = note
	r.UpdatedAt = now
}

// Deletable reports whether the requester may still withdraw the request
// itself. Once a record reaches a terminal state it is kept for audit.
func (r *WithdrawalRecord) Deletable() bool {
	return r.Status == WithdrawalPending || r.Status == WithdrawalAccepted
}

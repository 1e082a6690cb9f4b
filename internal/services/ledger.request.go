package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// RequestWithdrawal validates a seller's cash-out request and creates the
// pending record. Balance reservation and quota consumption happen in the
// repository transaction together with the insert, so a record never exists
// without its quota attempt having been spent.
func (s *LedgerService) RequestWithdrawal(ctx context.Context, userID, accountHolderName, bankName, iban string, amount decimal.Decimal) (vo.WithdrawalMutation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return vo.WithdrawalMutation{}, vo.ErrForbidden
	}

	accountHolderName = strings.TrimSpace(accountHolderName)
	bankName = strings.TrimSpace(bankName)
	iban = strings.TrimSpace(iban)
	if accountHolderName == "" || bankName == "" || iban == "" {
		return vo.WithdrawalMutation{}, vo.ErrMissingPayoutDetails
	}

	if amount.Sign() <= 0 {
		return vo.WithdrawalMutation{}, vo.ErrInvalidAmount
	}
	if amount.LessThan(s.policy.MinimumWithdrawal) {
		return vo.WithdrawalMutation{}, vo.ErrBelowMinimum
	}

	recordID, err := s.uid.Generate(ctx)
	if err != nil {
		return vo.WithdrawalMutation{}, fmt.Errorf("service: failed to generate withdrawal id: %w", err)
	}

	now := time.Now().UTC()
	record := domain.WithdrawalRecord{
		ID:                recordID,
		UserID:            userID,
		AccountHolderName: accountHolderName,
		BankName:          bankName,
		IBAN:              iban,
		Amount:            amount,
		Status:            domain.WithdrawalPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.repository.CreateWithdrawal(ctx, record)
	if err != nil {
		return vo.WithdrawalMutation{}, err
	}

	s.notify(ctx, Notification{
		Event:    EventWithdrawalRequested,
		RecordID: created.ID,
		UserID:   created.UserID,
		Status:   string(created.Status),
		Message:  fmt.Sprintf("withdrawal of %s %s requested", created.Amount, s.policy.Currency),
		At:       now,
	})

	return vo.WithdrawalMutation{
		Message:    "withdrawal request submitted",
		Withdrawal: withdrawalView(created),
	}, nil
}

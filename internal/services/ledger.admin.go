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

// AdminAccept moves a pending withdrawal to accepted. The reservation taken
// at request time stays held.
func (s *LedgerService) AdminAccept(ctx context.Context, recordID string) (vo.WithdrawalMutation, error) {
	record, err := s.repository.GetWithdrawalByID(ctx, recordID)
	if err != nil {
		return vo.WithdrawalMutation{}, err
	}

	from := record.Status
	now := time.Now().UTC()
	if err := record.Accept(now); err != nil {
		return vo.WithdrawalMutation{}, err
	}

	if err := s.repository.ApplyTransition(ctx, record, from, decimal.Zero); err != nil {
		return vo.WithdrawalMutation{}, err
	}

	s.notify(ctx, Notification{
		Event:    EventWithdrawalAccepted,
		RecordID: record.ID,
		UserID:   record.UserID,
		Status:   string(record.Status),
		Message:  "withdrawal request accepted",
		At:       now,
	})

	return vo.WithdrawalMutation{
		Message:    "withdrawal accepted",
		Withdrawal: withdrawalView(record),
	}, nil
}

// AdminReject refuses a pending or accepted withdrawal and returns the
// reserved amount to the seller's balance. The consumed monthly attempt is
// not refunded.
func (s *LedgerService) AdminReject(ctx context.Context, recordID string) (vo.WithdrawalMutation, error) {
	record, err := s.repository.GetWithdrawalByID(ctx, recordID)
	if err != nil {
		return vo.WithdrawalMutation{}, err
	}

	from := record.Status
	now := time.Now().UTC()
	if err := record.Reject(now); err != nil {
		return vo.WithdrawalMutation{}, err
	}

	if err := s.repository.ApplyTransition(ctx, record, from, record.Amount); err != nil {
		return vo.WithdrawalMutation{}, err
	}

	s.notify(ctx, Notification{
		Event:    EventWithdrawalRejected,
		RecordID: record.ID,
		UserID:   record.UserID,
		Status:   string(record.Status),
		Message:  "withdrawal request rejected, amount returned to balance",
		At:       now,
	})

	return vo.WithdrawalMutation{
		Message:    "withdrawal rejected",
		Withdrawal: withdrawalView(record),
	}, nil
}

// AdminComplete finalizes an accepted withdrawal: the fee breakdown is
// computed and recorded for audit, the routing details are attached, and the
// reservation becomes a permanent debit.
func (s *LedgerService) AdminComplete(ctx context.Context, recordID, routingNumber string, routingDate time.Time) (vo.WithdrawalMutation, error) {
	record, err := s.repository.GetWithdrawalByID(ctx, recordID)
	if err != nil {
		return vo.WithdrawalMutation{}, err
	}

	fees, err := domain.ComputeFees(record.Amount, s.policy.Fees)
	if err != nil {
		return vo.WithdrawalMutation{}, err
	}

	from := record.Status
	now := time.Now().UTC()
	if err := record.Complete(routingNumber, routingDate, fees, now); err != nil {
		return vo.WithdrawalMutation{}, err
	}

	if err := s.repository.ApplyTransition(ctx, record, from, decimal.Zero); err != nil {
		return vo.WithdrawalMutation{}, err
	}

	s.notify(ctx, Notification{
		Event:    EventWithdrawalCompleted,
		RecordID: record.ID,
		UserID:   record.UserID,
		Status:   string(record.Status),
		Message:  fmt.Sprintf("withdrawal completed, net payout %s %s", fees.NetPayout, s.policy.Currency),
		At:       now,
	})

	return vo.WithdrawalMutation{
		Message:    "withdrawal completed",
		Withdrawal: withdrawalView(record),
	}, nil
}

// AdminAddNote overwrites the administrator notes on a record in any state.
// Applying the same note twice is a no-op for everything but updated_at.
func (s *LedgerService) AdminAddNote(ctx context.Context, recordID, note string) (vo.WithdrawalMutation, error) {
	record, err := s.repository.GetWithdrawalByID(ctx, recordID)
	if err != nil {
		return vo.WithdrawalMutation{}, err
	}

	now := time.Now().UTC()
	record.SetAdminNotes(strings.TrimSpace(note), now)

	if err := s.repository.UpdateAdminNotes(ctx, record.ID, record.AdminNotes, now); err != nil {
		return vo.WithdrawalMutation{}, err
	}

	return vo.WithdrawalMutation{
		Message:    "note saved",
		Withdrawal: withdrawalView(record),
	}, nil
}

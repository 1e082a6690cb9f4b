package services

import (
	"context"
	"strings"
	"time"

	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// RequesterDelete withdraws the request itself. Only the owner may delete,
// and only while the record is still pending or accepted; the reserved
// amount goes back to the balance, the spent quota attempt does not.
func (s *LedgerService) RequesterDelete(ctx context.Context, recordID, requesterID string) (vo.WithdrawalMutation, error) {
	requesterID = strings.TrimSpace(requesterID)
	if requesterID == "" {
		return vo.WithdrawalMutation{}, vo.ErrForbidden
	}

	record, err := s.repository.GetWithdrawalByID(ctx, recordID)
	if err != nil {
		return vo.WithdrawalMutation{}, err
	}

	if record.UserID != requesterID {
		return vo.WithdrawalMutation{}, vo.ErrForbidden
	}
	if !record.Deletable() {
		return vo.WithdrawalMutation{}, vo.ErrInvalidTransition
	}

	now := time.Now().UTC()
	if err := s.repository.DeleteWithdrawal(ctx, record.ID, requesterID, record.Status, record.Amount, now); err != nil {
		return vo.WithdrawalMutation{}, err
	}

	s.notify(ctx, Notification{
		Event:    EventWithdrawalDeleted,
		RecordID: record.ID,
		UserID:   record.UserID,
		Message:  "withdrawal request deleted, amount returned to balance",
		At:       now,
	})

	return vo.WithdrawalMutation{
		Message:    "withdrawal request deleted",
		Withdrawal: withdrawalView(record),
	}, nil
}

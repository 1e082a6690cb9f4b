package services

import (
	"context"
	"strings"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// GetWithdrawal returns one record. Non-admin callers may only read their own.
func (s *LedgerService) GetWithdrawal(ctx context.Context, recordID, callerID string, isAdmin bool) (vo.WithdrawalView, error) {
	record, err := s.repository.GetWithdrawalByID(ctx, recordID)
	if err != nil {
		return vo.WithdrawalView{}, err
	}

	if !isAdmin && record.UserID != strings.TrimSpace(callerID) {
		return vo.WithdrawalView{}, vo.ErrForbidden
	}

	return withdrawalView(record), nil
}

// ListWithdrawals returns a page of records. Non-admin callers are pinned to
// their own records regardless of the requested filter.
func (s *LedgerService) ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter, callerID string, isAdmin bool) (vo.WithdrawalList, error) {
	if !isAdmin {
		callerID = strings.TrimSpace(callerID)
		if callerID == "" {
			return vo.WithdrawalList{}, vo.ErrForbidden
		}
		filter.UserID = callerID
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	records, total, err := s.repository.ListWithdrawals(ctx, filter)
	if err != nil {
		return vo.WithdrawalList{}, err
	}

	views := make([]vo.WithdrawalView, 0, len(records))
	for _, record := range records {
		views = append(views, withdrawalView(record))
	}

	return vo.WithdrawalList{
		Withdrawals: views,
		Total:       total,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}, nil
}

// GetBalance reports the caller's withdrawable balance and remaining monthly
// withdrawal attempts.
func (s *LedgerService) GetBalance(ctx context.Context, userID string) (vo.BalanceInquiry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return vo.BalanceInquiry{}, vo.ErrForbidden
	}

	ledger, err := s.repository.GetUserLedger(ctx, userID)
	if err != nil {
		return vo.BalanceInquiry{}, err
	}

	return vo.BalanceInquiry{
		UserID:          ledger.UserID,
		Balance:         ledger.Balance,
		WithdrawalTimes: ledger.WithdrawalTimes,
		Currency:        s.policy.Currency,
		UpdatedAt:       ledger.UpdatedAt,
	}, nil
}

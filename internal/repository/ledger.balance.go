package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

type userLedgerRow struct {
	UserID          string          `db:"user_id"`
	Balance         decimal.Decimal `db:"balance"`
	WithdrawalTimes int             `db:"withdrawal_times"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r *WithdrawalLedgerRepository) GetUserLedger(ctx context.Context, userID string) (domain.UserLedger, error) {
	parsedUserID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UserLedger{}, fmt.Errorf("repository: invalid user_id: %w", err)
	}

	const query = `
		SELECT user_id::text AS user_id, balance, withdrawal_times, updated_at
		FROM user_ledgers
		WHERE user_id = $1
	`

	var row userLedgerRow
	if err := r.db.GetContext(ctx, &row, query, parsedUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserLedger{}, vo.ErrLedgerNotFound
		}
		return domain.UserLedger{}, fmt.Errorf("repository: get user ledger failed: %w", err)
	}

	return domain.UserLedger{
		UserID:          row.UserID,
		Balance:         row.Balance,
		WithdrawalTimes: row.WithdrawalTimes,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

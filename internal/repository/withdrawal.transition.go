package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// ApplyTransition persists a status change produced by the domain state
// machine. The UPDATE is guarded on the expected prior status, so of two
// concurrent transitions on the same record at most one commits; the loser
// gets vo.ErrConflict. balanceCredit, when positive, is returned to the
// owner's ledger in the same transaction (reject path).
func (r *WithdrawalLedgerRepository) ApplyTransition(ctx context.Context, record domain.WithdrawalRecord, from domain.WithdrawalStatus, balanceCredit decimal.Decimal) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	const transitionQuery = `
		UPDATE withdrawals
		SET status = $3,
		    routing_number = $4,
		    routing_date = $5,
		    platform_fee = $6,
		    processing_fee = $7,
		    net_payout = $8,
		    updated_at = $9
		WHERE id = $1 AND status = $2
	`

	routingNumber := sql.NullString{}
	if record.RoutingNumber != "" {
		routingNumber = sql.NullString{String: record.RoutingNumber, Valid: true}
	}
	routingDate := sql.NullTime{}
	if record.RoutingDate != nil {
		routingDate = sql.NullTime{Time: *record.RoutingDate, Valid: true}
	}
	var platformFee, processingFee, netPayout decimal.NullDecimal
	if record.Fees != nil {
		platformFee = decimal.NewNullDecimal(record.Fees.PlatformFee)
		processingFee = decimal.NewNullDecimal(record.Fees.ProcessingFee)
		netPayout = decimal.NewNullDecimal(record.Fees.NetPayout)
	}

	result, err := tx.ExecContext(ctx, transitionQuery,
		record.ID, from, record.Status,
		routingNumber, routingDate,
		platformFee, processingFee, netPayout,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to transition withdrawal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return r.classifyMissedUpdate(ctx, tx, record.ID)
	}

	if balanceCredit.Sign() > 0 {
		if err := creditLedger(ctx, tx, record.UserID, balanceCredit, record.UpdatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: failed to commit transition: %w", err)
	}

	return nil
}

// classifyMissedUpdate tells a vanished record apart from a lost race.
func (r *WithdrawalLedgerRepository) classifyMissedUpdate(ctx context.Context, tx *sqlx.Tx, recordID string) error {
	var status string
	err := tx.GetContext(ctx, &status, `SELECT status FROM withdrawals WHERE id = $1`, recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vo.ErrRecordNotFound
		}
		return fmt.Errorf("repository: failed to inspect withdrawal status: %w", err)
	}
	return vo.ErrConflict
}

func creditLedger(ctx context.Context, tx *sqlx.Tx, userID string, amount decimal.Decimal, updatedAt time.Time) error {
	const creditQuery = `
		UPDATE user_ledgers
		SET balance = balance + $2, updated_at = $3
		WHERE user_id = $1
	`

	result, err := tx.ExecContext(ctx, creditQuery, userID, amount, updatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to credit ledger: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return vo.ErrLedgerNotFound
	}

	return nil
}

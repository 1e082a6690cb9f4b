package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// DeleteWithdrawal removes a requester's own record and returns the reserved
// amount to their ledger in one transaction. The DELETE is guarded on the
// expected status so it cannot race an admin transition into double-crediting.
func (r *WithdrawalLedgerRepository) DeleteWithdrawal(ctx context.Context, recordID, userID string, from domain.WithdrawalStatus, refund decimal.Decimal, now time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	const deleteQuery = `
		DELETE FROM withdrawals
		WHERE id = $1 AND user_id = $2 AND status = $3
	`

	result, err := tx.ExecContext(ctx, deleteQuery, recordID, userID, from)
	if err != nil {
		return fmt.Errorf("repository: failed to delete withdrawal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return r.classifyMissedUpdate(ctx, tx, recordID)
	}

	if err := creditLedger(ctx, tx, userID, refund, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: failed to commit delete: %w", err)
	}

	return nil
}

// UpdateAdminNotes overwrites the notes on a record in any state.
func (r *WithdrawalLedgerRepository) UpdateAdminNotes(ctx context.Context, recordID, note string, now time.Time) error {
	const noteQuery = `
		UPDATE withdrawals
		SET admin_notes = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, noteQuery, recordID, note, now)
	if err != nil {
		return fmt.Errorf("repository: failed to update admin notes: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return vo.ErrRecordNotFound
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

// WithdrawalLedgerRepository persists withdrawal records and the per-user
// ledger they draw from. Every multi-entity mutation runs in one transaction.
type WithdrawalLedgerRepository struct {
	db *sqlx.DB
}

func NewWithdrawalLedgerRepository(db *sqlx.DB) *WithdrawalLedgerRepository {
	return &WithdrawalLedgerRepository{db: db}
}

// CreateWithdrawal reserves the amount, consumes one quota attempt, and
// inserts the pending record atomically. A zero-row ledger update is
// re-read inside the transaction to report the precise failure.
func (r *WithdrawalLedgerRepository) CreateWithdrawal(ctx context.Context, record domain.WithdrawalRecord) (domain.WithdrawalRecord, error) {
	parsedUserID, err := uuid.Parse(record.UserID)
	if err != nil {
		return domain.WithdrawalRecord{}, fmt.Errorf("repository: invalid user_id: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WithdrawalRecord{}, fmt.Errorf("repository: failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	const reserveQuery = `
		UPDATE user_ledgers
		SET balance = balance - $2,
		    withdrawal_times = withdrawal_times - 1,
		    updated_at = $3
		WHERE user_id = $1 AND balance >= $2 AND withdrawal_times > 0
		RETURNING balance, withdrawal_times
	`

	var reserved struct {
		Balance         decimal.Decimal `db:"balance"`
		WithdrawalTimes int             `db:"withdrawal_times"`
	}
	err = tx.GetContext(ctx, &reserved, reserveQuery, parsedUserID, record.Amount, record.CreatedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return domain.WithdrawalRecord{}, fmt.Errorf("repository: failed to reserve withdrawal amount: %w", err)
		}

		reason, diagErr := r.diagnoseReserveFailure(ctx, tx, parsedUserID, record.Amount)
		if diagErr != nil {
			return domain.WithdrawalRecord{}, diagErr
		}
		return domain.WithdrawalRecord{}, reason
	}

	const insertQuery = `
		INSERT INTO withdrawals (
			id, user_id, account_holder_name, bank_name, iban,
			amount, status, admin_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.ExecContext(ctx, insertQuery,
		record.ID, parsedUserID, record.AccountHolderName, record.BankName, record.IBAN,
		record.Amount, record.Status, record.AdminNotes, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return domain.WithdrawalRecord{}, fmt.Errorf("repository: failed to insert withdrawal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.WithdrawalRecord{}, fmt.Errorf("repository: failed to commit withdrawal request: %w", err)
	}

	return record, nil
}

func (r *WithdrawalLedgerRepository) diagnoseReserveFailure(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount decimal.Decimal) (error, error) {
	const ledgerQuery = `
		SELECT balance, withdrawal_times
		FROM user_ledgers
		WHERE user_id = $1
	`

	var ledger struct {
		Balance         decimal.Decimal `db:"balance"`
		WithdrawalTimes int             `db:"withdrawal_times"`
	}
	if err := tx.GetContext(ctx, &ledger, ledgerQuery, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vo.ErrLedgerNotFound, nil
		}
		return nil, fmt.Errorf("repository: failed to inspect user ledger: %w", err)
	}

	if ledger.WithdrawalTimes <= 0 {
		return vo.ErrQuotaExhausted, nil
	}
	if ledger.Balance.LessThan(amount) {
		return vo.ErrInsufficientBalance, nil
	}

	// The guarded update matched nothing yet the re-read passes: a
	// concurrent request won the row in between.
	return vo.ErrConflict, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

type withdrawalRow struct {
	ID                string              `db:"id"`
	UserID            string              `db:"user_id"`
	AccountHolderName string              `db:"account_holder_name"`
	BankName          string              `db:"bank_name"`
	IBAN              string              `db:"iban"`
	Amount            decimal.Decimal     `db:"amount"`
	Status            string              `db:"status"`
	AdminNotes        string              `db:"admin_notes"`
	RoutingNumber     sql.NullString      `db:"routing_number"`
	RoutingDate       sql.NullTime        `db:"routing_date"`
	PlatformFee       decimal.NullDecimal `db:"platform_fee"`
	ProcessingFee     decimal.NullDecimal `db:"processing_fee"`
	NetPayout         decimal.NullDecimal `db:"net_payout"`
	CreatedAt         time.Time           `db:"created_at"`
	UpdatedAt         time.Time           `db:"updated_at"`
}

const withdrawalColumns = `
	id, user_id::text AS user_id, account_holder_name, bank_name, iban,
	amount, status, admin_notes, routing_number, routing_date,
	platform_fee, processing_fee, net_payout, created_at, updated_at
`

func (row withdrawalRow) toDomain() (domain.WithdrawalRecord, error) {
	status, err := domain.ParseWithdrawalStatus(row.Status)
	if err != nil {
		return domain.WithdrawalRecord{}, fmt.Errorf("repository: stored status %q is not recognized: %w", row.Status, err)
	}

	record := domain.WithdrawalRecord{
		ID:                row.ID,
		UserID:            row.UserID,
		AccountHolderName: row.AccountHolderName,
		BankName:          row.BankName,
		IBAN:              row.IBAN,
		Amount:            row.Amount,
		Status:            status,
		AdminNotes:        row.AdminNotes,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}

	if row.RoutingNumber.Valid {
		record.RoutingNumber = row.RoutingNumber.String
	}
	if row.RoutingDate.Valid {
		routingDate := row.RoutingDate.Time
		record.RoutingDate = &routingDate
	}
	if row.PlatformFee.Valid && row.ProcessingFee.Valid && row.NetPayout.Valid {
		record.Fees = &domain.FeeBreakdown{
			PlatformFee:   row.PlatformFee.Decimal,
			ProcessingFee: row.ProcessingFee.Decimal,
			NetPayout:     row.NetPayout.Decimal,
		}
	}

	return record, nil
}

func (r *WithdrawalLedgerRepository) GetWithdrawalByID(ctx context.Context, recordID string) (domain.WithdrawalRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM withdrawals WHERE id = $1`, withdrawalColumns)

	var row withdrawalRow
	if err := r.db.GetContext(ctx, &row, query, recordID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WithdrawalRecord{}, vo.ErrRecordNotFound
		}
		return domain.WithdrawalRecord{}, fmt.Errorf("repository: get withdrawal by id failed: %w", err)
	}

	return row.toDomain()
}

func (r *WithdrawalLedgerRepository) ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.WithdrawalRecord, int, error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT count(*) FROM withdrawals` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("repository: count withdrawals failed: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM withdrawals%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		withdrawalColumns, where, len(args), len(args)+1,
	)
	args = append(args, filter.Offset)

	var rows []withdrawalRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("repository: list withdrawals failed: %w", err)
	}

	records := make([]domain.WithdrawalRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}

	return records, total, nil
}

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
	shareduid "github.com/notehive/payout-ledger-api/internal/shared/uid"
)

// WithdrawalLedgerRepository is what the ledger service needs from
// persistence. Every method that mutates more than one row is transactional
// on the repository side.
type WithdrawalLedgerRepository interface {
	CreateWithdrawal(ctx context.Context, record domain.WithdrawalRecord) (domain.WithdrawalRecord, error)
	ApplyTransition(ctx context.Context, record domain.WithdrawalRecord, from domain.WithdrawalStatus, balanceCredit decimal.Decimal) error
	DeleteWithdrawal(ctx context.Context, recordID, userID string, from domain.WithdrawalStatus, refund decimal.Decimal, now time.Time) error
	UpdateAdminNotes(ctx context.Context, recordID, note string, now time.Time) error
	GetWithdrawalByID(ctx context.Context, recordID string) (domain.WithdrawalRecord, error)
	ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.WithdrawalRecord, int, error)
	GetUserLedger(ctx context.Context, userID string) (domain.UserLedger, error)
}

// LedgerPolicy carries the configured business constants.
type LedgerPolicy struct {
	MinimumWithdrawal decimal.Decimal
	Fees              domain.FeePolicy
	Currency          string
}

// LedgerService orchestrates the withdrawal workflow: request validation,
// administrator transitions, requester deletes, and notification emission.
type LedgerService struct {
	repository WithdrawalLedgerRepository
	uid        shareduid.UIDGenerator
	notifier   Notifier
	policy     LedgerPolicy
	logger     *slog.Logger
}

func NewLedgerService(
	repository WithdrawalLedgerRepository,
	uid shareduid.UIDGenerator,
	notifier Notifier,
	policy LedgerPolicy,
	logger *slog.Logger,
) *LedgerService {
	return &LedgerService{
		repository: repository,
		uid:        uid,
		notifier:   notifier,
		policy:     policy,
		logger:     logger,
	}
}

// notify publishes a workflow event. Best effort: a notification failure is
// logged and never fails the operation that produced it.
func (s *LedgerService) notify(ctx context.Context, notification Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, notification); err != nil && s.logger != nil {
		s.logger.Warn("failed to emit withdrawal notification",
			"event", notification.Event, "record_id", notification.RecordID, "error", err)
	}
}

func withdrawalView(record domain.WithdrawalRecord) vo.WithdrawalView {
	view := vo.WithdrawalView{
		ID:                record.ID,
		UserID:            record.UserID,
		AccountHolderName: record.AccountHolderName,
		BankName:          record.BankName,
		IBAN:              record.IBAN,
		Amount:            record.Amount,
		Status:            string(record.Status),
		AdminNotes:        record.AdminNotes,
		RoutingNumber:     record.RoutingNumber,
		RoutingDate:       record.RoutingDate,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
	if record.Fees != nil {
		view.Fees = &vo.FeeBreakdownView{
			PlatformFee:   record.Fees.PlatformFee,
			ProcessingFee: record.Fees.ProcessingFee,
			NetPayout:     record.Fees.NetPayout,
		}
	}
	return view
}

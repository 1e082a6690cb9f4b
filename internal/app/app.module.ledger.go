package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/handlers"
	"github.com/notehive/payout-ledger-api/internal/repository"
	"github.com/notehive/payout-ledger-api/internal/services"
	"github.com/notehive/payout-ledger-api/internal/shared/config"
	sharedidempotency "github.com/notehive/payout-ledger-api/internal/shared/idempotency"
	sharednotify "github.com/notehive/payout-ledger-api/internal/shared/notify"
)

func LedgerModule() fx.Option {
	return fx.Module("ledger",
		fx.Provide(
			fx.Annotate(
				provideWithdrawalRateLimiter,
				fx.ResultTags(`name:"withdrawal_rate_limiter"`),
			),
			fx.Annotate(
				sharedidempotency.NewSQLXStore,
				fx.ParamTags(`name:"db_ledger"`),
				fx.ResultTags(`name:"withdrawal_idempotency_store"`),
				fx.As(new(sharedidempotency.Store)),
			),
			fx.Annotate(
				repository.NewWithdrawalLedgerRepository,
				fx.ParamTags(`name:"db_ledger"`),
				fx.As(new(services.WithdrawalLedgerRepository)),
			),
			provideLedgerPolicy,
			provideLedgerNotifier,
			fx.Annotate(
				services.NewLedgerService,
				fx.As(new(handlers.WithdrawalRequestService)),
				fx.As(new(handlers.WithdrawalQueryService)),
				fx.As(new(handlers.WithdrawalDeleteService)),
				fx.As(new(handlers.AdminWithdrawalService)),
			),
			handlers.NewWithdrawalRequestHandler,
			handlers.NewWithdrawalQueryHandler,
			handlers.NewWithdrawalDeleteHandler,
			handlers.NewAdminWithdrawalHandler,
		),
		fx.Invoke(registerLedgerRoutes),
	)
}

func provideLedgerPolicy(cfg config.Provider) (services.LedgerPolicy, error) {
	minimum := decimal.NewFromInt(100)
	if cfg.IsSet("ledger.minimum_withdrawal") {
		parsed, err := decimal.NewFromString(cfg.GetString("ledger.minimum_withdrawal"))
		if err != nil {
			return services.LedgerPolicy{}, fmt.Errorf("app: invalid ledger.minimum_withdrawal: %w", err)
		}
		minimum = parsed
	}

	fees := domain.FeePolicy{
		PlatformFeePercent:       decimal.NewFromFloat(0.15),
		PaymentProcessingPercent: decimal.NewFromFloat(0.02),
		FixedSurcharge:           decimal.NewFromInt(2),
	}
	if cfg.IsSet("ledger.fees.platform_percent") {
		fees.PlatformFeePercent = decimal.NewFromFloat(cfg.GetFloat64("ledger.fees.platform_percent"))
	}
	if cfg.IsSet("ledger.fees.processing_percent") {
		fees.PaymentProcessingPercent = decimal.NewFromFloat(cfg.GetFloat64("ledger.fees.processing_percent"))
	}
	if cfg.IsSet("ledger.fees.fixed_surcharge") {
		fees.FixedSurcharge = decimal.NewFromFloat(cfg.GetFloat64("ledger.fees.fixed_surcharge"))
	}
	if err := fees.Validate(); err != nil {
		return services.LedgerPolicy{}, fmt.Errorf("app: invalid fee policy: %w", err)
	}

	currency := strings.TrimSpace(cfg.GetString("ledger.currency"))
	if currency == "" {
		currency = "USD"
	}

	return services.LedgerPolicy{
		MinimumWithdrawal: minimum,
		Fees:              fees,
		Currency:          currency,
	}, nil
}

func provideLedgerNotifier(cfg config.Provider, redisClient *redis.Client) services.Notifier {
	publisher := sharednotify.NewRedisPublisher(redisClient, cfg.GetString("ledger.events_channel"))
	return services.NotifierFunc(func(ctx context.Context, notification services.Notification) error {
		return publisher.Publish(ctx, notification)
	})
}

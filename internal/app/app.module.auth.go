package app

import (
	"go.uber.org/fx"

	"github.com/notehive/payout-ledger-api/internal/handlers"
	"github.com/notehive/payout-ledger-api/internal/repository"
	"github.com/notehive/payout-ledger-api/internal/services"
)

func AuthModule() fx.Option {
	return fx.Module("auth",
		fx.Provide(
			fx.Annotate(
				repository.NewAuthLoginRepository,
				fx.ParamTags(`name:"db_auth"`),
				fx.As(new(services.AuthLoginRepository)),
			),
			fx.Annotate(
				services.NewAuthLoginService,
				fx.As(new(handlers.AuthLoginService)),
			),
			handlers.NewAuthLoginHandler,
		),
		fx.Invoke(registerAuthRoutes),
	)
}

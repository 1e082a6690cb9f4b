package app

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/notehive/payout-ledger-api/internal/handlers"
	"github.com/notehive/payout-ledger-api/internal/middlewares"
	sharedidempotency "github.com/notehive/payout-ledger-api/internal/shared/idempotency"
	sharedjwt "github.com/notehive/payout-ledger-api/internal/shared/jwt"
	sharedratelimit "github.com/notehive/payout-ledger-api/internal/shared/ratelimit"
)

type routerGroupsOut struct {
	fx.Out
	Public    fiber.Router `name:"api_public"`
	Protected fiber.Router `name:"api_protected"`
	Admin     fiber.Router `name:"api_admin"`
}

func provideRouterGroups(
	app *fiber.App,
	logger *slog.Logger,
	tokenManager sharedjwt.TokenManager,
) routerGroupsOut {
	app.Use(middlewares.NewHTTPRecoveryMiddleware())
	app.Use(middlewares.NewHTTPRequestIDMiddleware())
	app.Use(middlewares.NewHTTPCORSMiddleware())
	app.Use(middlewares.NewHTTPRequestResponseLogMiddleware(logger))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	protected := api.Group("", middlewares.NewHTTPJWTMiddleware(tokenManager))
	admin := protected.Group("/admin", middlewares.NewHTTPAdminRoleMiddleware())

	return routerGroupsOut{
		Public:    api,
		Protected: protected,
		Admin:     admin,
	}
}

type authRoutesIn struct {
	fx.In
	Public  fiber.Router `name:"api_public"`
	Handler *handlers.AuthLoginHandler
}

func registerAuthRoutes(in authRoutesIn) {
	in.Handler.Register(in.Public)
}

type ledgerRoutesIn struct {
	fx.In
	Protected        fiber.Router            `name:"api_protected"`
	Admin            fiber.Router            `name:"api_admin"`
	IdempotencyStore sharedidempotency.Store `name:"withdrawal_idempotency_store"`
	RateLimiter      sharedratelimit.Limiter `name:"withdrawal_rate_limiter"`
	Logger           *slog.Logger
	RequestHandler   *handlers.WithdrawalRequestHandler
	QueryHandler     *handlers.WithdrawalQueryHandler
	DeleteHandler    *handlers.WithdrawalDeleteHandler
	AdminHandler     *handlers.AdminWithdrawalHandler
}

func registerLedgerRoutes(in ledgerRoutesIn) {
	rateLimitMiddleware := middlewares.NewHTTPRateLimitMiddleware(middlewares.RateLimitConfig{
		Limiter:      in.RateLimiter,
		Logger:       in.Logger,
		KeyExtractor: middlewares.PerUserKeyExtractor("withdrawal"),
	})

	submitRouter := in.Protected.Group("", rateLimitMiddleware, middlewares.NewHTTPWithdrawalIdempotencyMiddleware(in.IdempotencyStore))
	in.RequestHandler.Register(submitRouter)

	in.QueryHandler.Register(in.Protected)
	in.DeleteHandler.Register(in.Protected)
	in.AdminHandler.Register(in.Admin)
}

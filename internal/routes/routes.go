package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/flite-pay/flite/internal/auth"
	"github.com/flite-pay/flite/internal/banks"
	"github.com/flite-pay/flite/internal/cards"
	"github.com/flite-pay/flite/internal/config"
	"github.com/flite-pay/flite/internal/identity"
	"github.com/flite-pay/flite/internal/middleware"
	"github.com/flite-pay/flite/internal/notification"
	"github.com/flite-pay/flite/internal/transfers"
	"github.com/flite-pay/flite/internal/verification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Dev runs entirely on in-memory stores; anywhere else the backing
	// services are mandatory.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)
	RegisterMetricsRoute(app)

	// Stores
	var transferStore transfers.Store
	var identityRepo identity.Repository
	var cardRepo cards.Repository
	var bankRepo banks.Repository
	if d.DB != nil {
		transferStore = transfers.NewPostgresStore(d.DB)
		identityRepo = identity.NewPostgresRepository(d.DB)
		cardRepo = cards.NewPostgresRepository(d.DB)
		bankRepo = banks.NewPostgresRepository(d.DB)
	} else {
		transferStore = transfers.NewMemoryStore()
		identityRepo = identity.NewMemoryRepository()
		cardRepo = cards.NewMemoryRepository()
		bankRepo = banks.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	wallet := transfers.NewWallet(transferStore, notifier)
	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	cardSvc := cards.NewService(cardRepo)

	walletHandler := transfers.NewHandler(wallet, bankRepo)
	identityHandler := identity.NewHandler(identitySvc)
	authHandler := auth.NewHandler(identitySvc, authSvc)
	cardHandler := cards.NewHandler(cardSvc)
	bankHandler := banks.NewHandler(bankRepo)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	api.Post("/users", identityHandler.Register)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg, identityRepo)
	protected := api.Group("", jwtmw)
	protected.Get("/me", identityHandler.Me)
	if d.Cache != nil {
		verificationSvc := verification.NewService(d.Cache, identityRepo, d.Cfg.VerificationTTL)
		RegisterVerificationRoutes(protected, verification.NewHandler(verificationSvc))
	}
	RegisterWalletRoutes(protected, walletHandler)
	RegisterCardRoutes(protected, cardHandler)
	RegisterBankRoutes(protected, bankHandler)

	return nil
}

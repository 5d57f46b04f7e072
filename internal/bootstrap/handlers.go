package bootstrap

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	_ "github.com/callboard/callboard-backend/docs"
	"github.com/callboard/callboard-backend/internal/admin"
	"github.com/callboard/callboard-backend/internal/assistant"
	"github.com/callboard/callboard-backend/internal/auth"
	"github.com/callboard/callboard-backend/internal/health"
	"github.com/callboard/callboard-backend/internal/metric"
	"github.com/callboard/callboard-backend/internal/user"
)

type HandlerParams struct {
	fx.In

	UserHandler      *user.Handler
	AssistantHandler *assistant.Handler
	MetricHandler    *metric.Handler
	AdminHandler     *admin.Handler
	HealthHandler    *health.Handler
	AuthMiddleware   *auth.Middleware
	Config           *Config
}

func metricsMiddleware(h *health.Handler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h.IncrementRequests()
			return next(c)
		}
	}
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	e.Use(metricsMiddleware(params.HealthHandler))

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	params.UserHandler.RegisterAuthRoutes(authGroup)
	sessionGroup := authGroup.Group("")
	sessionGroup.Use(params.AuthMiddleware.Authenticate)
	params.UserHandler.RegisterSessionRoutes(sessionGroup)

	usersGroup := api.Group("/users")
	usersGroup.Use(params.AuthMiddleware.Authenticate)
	params.UserHandler.RegisterUserRoutes(usersGroup)

	assistantsGroup := api.Group("/assistants")
	assistantsGroup.Use(params.AuthMiddleware.Authenticate)
	params.AssistantHandler.RegisterRoutes(assistantsGroup)
	params.MetricHandler.RegisterAssistantRoutes(assistantsGroup)

	analyticsGroup := api.Group("/metrics")
	analyticsGroup.Use(params.AuthMiddleware.Authenticate)
	params.MetricHandler.RegisterAnalyticsRoutes(analyticsGroup)

	// The ingestion pipeline authenticates with a shared secret
	// instead of a user session.
	bulkGroup := api.Group("/metrics")
	bulkGroup.Use(auth.SharedSecretMiddleware(params.Config.BulkMetricsSecret))
	params.MetricHandler.RegisterBulkRoutes(bulkGroup)

	adminGroup := api.Group("/admin")
	adminGroup.Use(params.AuthMiddleware.Authenticate)
	params.AdminHandler.RegisterRoutes(adminGroup)

	params.HealthHandler.RegisterRoutes(e)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideTokenManager(cfg *Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
}

func ProvideAuthMiddleware(tokens *auth.TokenManager, sessions *auth.SessionRegistry) *auth.Middleware {
	return auth.NewMiddleware(tokens, sessions)
}

func ProvideUserHandler(store *user.Store, tokens *auth.TokenManager, sessions *auth.SessionRegistry, assistants *assistant.Store, logger *slog.Logger) *user.Handler {
	return user.NewHandler(store, tokens, sessions, assistants, logger.With("handler", "user"))
}

func ProvideAssistantHandler(store *assistant.Store, metrics *metric.Store, logger *slog.Logger) *assistant.Handler {
	return assistant.NewHandler(store, metrics, logger.With("handler", "assistant"))
}

func ProvideMerger(assistants *assistant.Store, store *metric.Store, logger *slog.Logger) *metric.Merger {
	return metric.NewMerger(assistants, store, logger.With("component", "merger"))
}

func ProvideAggregator(assistants *assistant.Store, store *metric.Store) *metric.Aggregator {
	return metric.NewAggregator(assistants, store)
}

func ProvideMetricHandler(store *metric.Store, merger *metric.Merger, aggregator *metric.Aggregator, assistants *assistant.Store, logger *slog.Logger) *metric.Handler {
	return metric.NewHandler(store, merger, aggregator, assistants, logger.With("handler", "metric"))
}

func ProvideAdminHandler(users *user.Store, assistants *assistant.Store, metrics *metric.Store, logger *slog.Logger) *admin.Handler {
	return admin.NewHandler(users, assistants, metrics, logger.With("handler", "admin"))
}

func ProvideHealthHandler(db *gorm.DB, redisClient *redis.Client, cfg *Config) *health.Handler {
	return health.NewHandler(db, redisClient, cfg.Version)
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideTokenManager,
		auth.NewSessionRegistry,
		ProvideAuthMiddleware,
		ProvideUserHandler,
		ProvideAssistantHandler,
		ProvideMerger,
		ProvideAggregator,
		ProvideMetricHandler,
		ProvideAdminHandler,
		ProvideHealthHandler,
	),
	fx.Invoke(RegisterRoutes),
)

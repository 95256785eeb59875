package bootstrap

import (
	"log/slog"
	"os"

	"github.com/eleven-am/sketch-backend/internal/analytics"
	"github.com/eleven-am/sketch-backend/internal/health"
	"github.com/eleven-am/sketch-backend/internal/imagegen"
	"github.com/eleven-am/sketch-backend/internal/realtime"
	"github.com/eleven-am/sketch-backend/internal/session"
	"github.com/eleven-am/sketch-backend/internal/sketch"
	"github.com/eleven-am/sketch-backend/internal/transcription"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const version = "1.0.0"

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

func ProvideSketchHandler(service *sketch.Service, transcriber transcription.Transcriber, logger *slog.Logger) *sketch.Handler {
	return sketch.NewHandler(service, transcriber, logger)
}

func ProvideSessionHandler(store *session.Store, logger *slog.Logger) *session.Handler {
	return session.NewHandler(store, logger)
}

func ProvideAnalyticsHandler(aggregator *analytics.Aggregator, logger *slog.Logger) *analytics.Handler {
	return analytics.NewHandler(aggregator, logger)
}

func ProvideRealtimeHandler(service *sketch.Service, logger *slog.Logger) *realtime.Handler {
	return realtime.NewHandler(service, logger)
}

func ProvideHealthHandler(
	db *gorm.DB,
	redisClient *redis.Client,
	transcriber transcription.Transcriber,
	orchestrator *imagegen.Orchestrator,
) *health.Handler {
	return health.NewHandler(db, redisClient, transcriber, orchestrator, version)
}

type HandlerParams struct {
	fx.In

	SketchHandler    *sketch.Handler
	SessionHandler   *session.Handler
	AnalyticsHandler *analytics.Handler
	RealtimeHandler  *realtime.Handler
	HealthHandler    *health.Handler
	Config           *Config
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/api")

	params.SketchHandler.RegisterRoutes(api)
	params.SessionHandler.RegisterRoutes(api)
	params.AnalyticsHandler.RegisterRoutes(api)
	params.RealtimeHandler.RegisterRoutes(api)
	params.HealthHandler.RegisterRoutes(e)

	e.Static("/assets", params.Config.StaticDir)
	e.GET("/", func(c echo.Context) error {
		return c.File(params.Config.IndexHTML)
	})
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideSketchHandler,
		ProvideSessionHandler,
		ProvideAnalyticsHandler,
		ProvideRealtimeHandler,
		ProvideHealthHandler,
	),
	fx.Invoke(RegisterRoutes),
)

package bootstrap

import (
	"log/slog"

	"github.com/eleven-am/sketch-backend/internal/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideSessionStore(cfg *Config, db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *session.Store {
	return session.NewStore(db, redisClient, cfg.CacheTTL, logger)
}

func RunMigrations(store *session.Store) error {
	return store.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(ProvideSessionStore),
	fx.Invoke(RunMigrations),
)

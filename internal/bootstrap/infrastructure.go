package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ProvideDatabase opens postgres when a DSN is configured. Without one
// the service runs memory-only: results still generate, sessions are
// just not retrievable later.
func ProvideDatabase(cfg *Config, log *slog.Logger) *gorm.DB {
	if cfg.DatabaseDSN == "" {
		log.Warn("no database configured, sessions will not persist")
		return nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Error("database connection failed, continuing without persistence", "error", err)
		return nil
	}
	return db
}

func ProvideRedisClient(cfg *Config, log *slog.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Warn("no redis configured, session cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("redis connection failed, session cache disabled", "error", err)
		return nil
	}
	return client
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideDatabase,
		ProvideRedisClient,
	),
)

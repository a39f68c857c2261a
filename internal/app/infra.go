package app

import (
	"context"
	"database/sql"

	"item-portal/internal/config"
	"item-portal/internal/db"
	"item-portal/internal/logger"
	"item-portal/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

// setupInfra opens only the backing services the configured stores need:
// Postgres when credentials/items live in the database, Redis when the
// session table does.
func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.CredentialStore == "postgres" {
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}

		if err := db.RunPortalMigration(ctx, sqlDB); err != nil {
			return nil, err
		}

		logger.Info("database ready", nil)
		infra.DB = &db.DB{DB: sqlDB}
	}

	if cfg.SessionStore == "redis" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}

		logger.Info("redis ready", nil)
		infra.Redis = redisClient
	}

	return infra, nil
}

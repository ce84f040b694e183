package app

import (
	"context"
	"fmt"

	"github.com/IT-Nick/vocational-profile/internal/infra/config"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitDatabase устанавливает подключение к базе данных
func InitDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}
	connConfig.MaxConns = cfg.Database.MaxConns

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	log.Info("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.Name, "max_conns", connConfig.MaxConns)
	return db, nil
}

package datastore

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dataset-sql-assistant/internal/config"
)

// EnsureDatabaseExists creates the datasets database on the postgres backend
// when it is missing. It needs admin credentials because CREATE DATABASE
// cannot run through the application connection. No-op for sqlite, where
// opening the file is enough.
func EnsureDatabaseExists(ctx context.Context, cfg config.StoreConfig) error {
	if cfg.Backend != BackendPostgres {
		return nil
	}

	adminUser := cfg.AdminUser
	adminPassword := cfg.AdminPassword
	if adminUser == "" {
		adminUser = cfg.User
		adminPassword = cfg.Password
	}

	userInfo := url.UserPassword(adminUser, adminPassword)
	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/postgres?sslmode=disable",
		userInfo.String(),
		cfg.Host,
		cfg.Port,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse admin connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	err = pool.QueryRow(checkCtx,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)",
		cfg.Database,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		return nil
	}

	// CREATE DATABASE cannot be parameterized; sanitize the identifier instead.
	quoted := pgx.Identifier{cfg.Database}.Sanitize()
	if _, err := pool.Exec(checkCtx, "CREATE DATABASE "+quoted); err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.Database, err)
	}

	return nil
}

package datastore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dataset-sql-assistant/internal/config"
	"dataset-sql-assistant/internal/models"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Store wraps the relational database that holds the ingested datasets plus
// the assistant's own bookkeeping tables.
type Store struct {
	db      *gorm.DB
	backend string
}

func Open(cfg config.StoreConfig) (*Store, error) {
	var dialector gorm.Dialector

	switch cfg.Backend {
	case BackendSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case BackendPostgres:
		userInfo := url.UserPassword(cfg.User, cfg.Password)
		dsn := fmt.Sprintf(
			"postgres://%s@%s:%s/%s?sslmode=disable",
			userInfo.String(),
			cfg.Host,
			cfg.Port,
			url.PathEscape(cfg.Database),
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s store: %w", cfg.Backend, err)
	}

	err = db.AutoMigrate(
		&models.Dataset{},
		&models.QueryHistory{},
	)
	if err != nil {
		return nil, fmt.Errorf("store migration failed: %w", err)
	}

	return &Store{db: db, backend: cfg.Backend}, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Backend() string {
	return s.backend
}

func (s *Store) Close() error {
	inner, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying connection: %w", err)
	}
	return inner.Close()
}

// DropTable removes a dataset table. Used when a CSV file disappears from the
// data directory and its table must go with it.
func (s *Store) DropTable(ctx context.Context, table string) error {
	if err := s.db.WithContext(ctx).Exec("DROP TABLE IF EXISTS " + QuoteIdent(table)).Error; err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	return nil
}

// QuoteIdent quotes an identifier with double quotes, which both sqlite and
// postgres accept.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

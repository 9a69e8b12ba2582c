package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB represents a raw database/sql connection used by the migration runner
// and health checks.
type DB struct {
	*sql.DB
}

// New opens a lib/pq connection to Postgres.
func New(cfg *config.Config, log *zap.Logger) (*DB, error) {
	log.Info("connecting to database",
		zap.String("host", cfg.DBHost),
		zap.String("port", cfg.DBPort),
		zap.String("user", cfg.DBUser))

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}
	return &DB{db}, nil
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Open returns a gorm handle for the configured driver. Postgres reuses
// the pooled lib/pq connection from New.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, *DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	switch cfg.DBDriver {
	case "postgres":
		raw, err := New(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: raw.DB}), gormCfg)
		if err != nil {
			raw.Close()
			return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		return db, raw, nil
	case "sqlite":
		log.Info("using sqlite database", zap.String("path", cfg.SQLitePath))
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		return db, &DB{sqlDB}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

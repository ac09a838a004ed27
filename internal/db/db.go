package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"yumexpress-be/internal/config"
	"yumexpress-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	pingTimeout     = 5 * time.Second
	connMaxLifetime = 30 * time.Minute
)

func buildDSN(cfg *config.Config) string {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode,
	)
}

// NewDatabase opens a postgres pool sized from cfg and verifies it with a ping.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(cfg, "postgres")
}

func newDatabaseWithDriver(cfg *config.Config, driver string) (*sql.DB, error) {
	db, err := sql.Open(driver, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	}
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

// InitDB is NewDatabase for the server entrypoint: it exits on failure.
func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("database unavailable", zap.String("host", cfg.DBHost), zap.Error(err))
	}

	logger.L().Info("database connection established",
		zap.String("host", cfg.DBHost),
		zap.String("name", cfg.DBName),
		zap.Int("max_open_conns", cfg.DBMaxOpenConns),
	)
	return db
}

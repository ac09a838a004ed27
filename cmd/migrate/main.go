package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"yumexpress-be/internal/config"
	database "yumexpress-be/internal/db"
	"yumexpress-be/internal/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type migration struct {
	Version string
	Up      string
	Down    string
}

type migrator struct {
	db  *sql.DB
	log *zap.Logger
}

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "./migrations", "directory holding the .sql migrations")
	flag.Parse()

	db, err := openDatabase()
	if err != nil {
		logger.L().Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := run(context.Background(), db, *mode, *dir); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

// openDatabase prefers DB_URL and falls back to the DB_* variables the server uses.
func openDatabase() (*sql.DB, error) {
	if url := os.Getenv("DB_URL"); url != "" {
		return sql.Open("postgres", url)
	}
	return database.NewDatabase(config.LoadDatabaseConfig())
}

func run(ctx context.Context, db *sql.DB, mode, dir string) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	migrations, err := loadMigrations(dir)
	if err != nil {
		return err
	}

	m := &migrator{db: db, log: logger.L().With(zap.String("dir", dir))}
	switch mode {
	case "up":
		return m.up(ctx, migrations)
	case "down":
		return m.down(ctx, migrations)
	case "status":
		return m.status(ctx, migrations)
	}
	return fmt.Errorf("unknown mode %q (use up, down or status)", mode)
}

func loadMigrations(dir string) ([]migration, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	slices.Sort(files)

	out := make([]migration, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		out = append(out, migration{
			Version: filepath.Base(f),
			Up:      extractMigrationPart(string(content), "Up"),
			Down:    extractMigrationPart(string(content), "Down"),
		})
	}
	return out, nil
}

func (m *migrator) applied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", version, err)
	}
	return exists, nil
}

func (m *migrator) up(ctx context.Context, migrations []migration) error {
	count := 0
	for _, mig := range migrations {
		done, err := m.applied(ctx, mig.Version)
		if err != nil {
			return err
		}
		if done {
			m.log.Debug("skipping applied migration", zap.String("version", mig.Version))
			continue
		}

		m.log.Info("applying migration", zap.String("version", mig.Version))
		err = m.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, mig.Up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply %s: %w", mig.Version, err)
		}
		count++
	}

	m.log.Info("migrations up to date", zap.Int("applied", count))
	return nil
}

// down rolls back the most recently applied migration only.
func (m *migrator) down(ctx context.Context, migrations []migration) error {
	var last string
	err := m.db.QueryRowContext(ctx,
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		m.log.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find last migration: %w", err)
	}

	idx := slices.IndexFunc(migrations, func(mig migration) bool { return mig.Version == last })
	if idx < 0 {
		return fmt.Errorf("migration file not found for version %s", last)
	}

	m.log.Info("rolling back migration", zap.String("version", last))
	err = m.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, migrations[idx].Down); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, last)
		return err
	})
	if err != nil {
		return fmt.Errorf("roll back %s: %w", last, err)
	}
	return nil
}

func (m *migrator) status(ctx context.Context, migrations []migration) error {
	for _, mig := range migrations {
		done, err := m.applied(ctx, mig.Version)
		if err != nil {
			return err
		}
		m.log.Info("migration", zap.String("version", mig.Version), zap.Bool("applied", done))
	}
	return nil
}

func (m *migrator) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// extractMigrationPart returns the statements between "-- +migrate <section>"
// and the next marker.
func extractMigrationPart(content, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "-- +migrate "+section):
			inPart = true
		case inPart && strings.HasPrefix(strings.TrimSpace(line), "-- +migrate"):
			return part.String()
		case inPart:
			part.WriteString(line)
			part.WriteByte('\n')
		}
	}
	return part.String()
}

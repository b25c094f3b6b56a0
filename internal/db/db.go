package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/vytor/wordflash/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open connects to the SQLite database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Info("opening database: %s", path)

	conn, err := sqlx.Open("sqlite3", DSN(path))
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Error("failed to ping database: %v", err)
		return nil, err
	}

	if err := Migrate(ctx, conn); err != nil {
		_ = conn.Close()
		log.Error("failed to apply migrations: %v", err)
		return nil, err
	}

	log.Info("database ready")
	return conn, nil
}

// DSN appends the connection parameters the repositories rely on.
func DSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL"
}

// Migrate applies every embedded migration that has not run yet.
func Migrate(ctx context.Context, conn *sqlx.DB) error {
	log := logger.FromContext(ctx).WithPrefix("db")

	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, conn.DB, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied: %s (%s)", r.Source.Path, r.Duration)
	}
	if len(results) == 0 {
		log.Debug("no pending migrations")
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/sandevgo/saori/pkg/log"
	"github.com/sandevgo/saori/pkg/sqlite"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrations embed.FS

// NewDB opens the store at path, creating the file and its directory when
// missing, and applies pending migrations.
func NewDB(ctx context.Context, path string) (db *sql.DB, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err = sql.Open(sqlite.DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, db.Close())
		}
	}()

	db.SetMaxOpenConns(4)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Str("path", path).Msg("sqlite store ready")
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(log.NewGooseLoggerFromCtx(ctx))

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	return nil
}

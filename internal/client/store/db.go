// Package store owns the local sqlite database used for durable client
// state and wires up its migrations.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/parishportal/parishportal/internal/client/repositories/state"
	"github.com/parishportal/parishportal/internal/client/store/migrations"
)

// Repositories bundles the repositories backed by the local database,
// together with the handle needed to close it.
type Repositories struct {
	State state.Repository
	DB    *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if necessary) the sqlite database at dsn,
// migrates it, and returns the repository bundle.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		State: state.NewSQLiteRepository(db),
		DB:    db,
	}, nil
}

package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var migrations embed.FS

// Up applies all pending migrations. Goose serializes concurrent runners
// through its version table, so it is safe to call on every boot.
func Up(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "sql")
}

package database

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/yudistira/open-music-api/migrations"
)

// Migrate applies all pending embedded SQL migrations on startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

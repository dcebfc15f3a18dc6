// Package migrations embeds the schema and applies it with goose. The SQL is
// kept per dialect: sqlite and postgres differ on autoincrement keys and
// boolean defaults.
package migrations

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Up applies all pending migrations for the given driver
// ("sqlite3" or "postgres").
func Up(db *sqlx.DB, driver string) error {
	var dialect, dir string
	switch driver {
	case "sqlite3":
		dialect, dir = "sqlite3", "sqlite"
	case "postgres":
		dialect, dir = "postgres", "postgres"
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db.DB, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

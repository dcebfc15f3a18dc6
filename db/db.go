package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Database drivers selected via config.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens and pings the configured database. For sqlite the DSN is a
// file path whose directory is created on first run.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite3" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}
	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return conn, nil
}

// ErrActiveRevision is returned when a delete targets the revision that is
// currently driving emission calculations.
var ErrActiveRevision = errors.New("cannot delete the active revision")

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Pagination is shared by every filtered list. Page starts at 1; PerPage is
// capped by the handlers at 100.
type Pagination struct {
	Page    int
	PerPage int
}

func (p Pagination) limitOffset() (int, int) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	perPage := p.PerPage
	if perPage < 1 {
		perPage = 20
	}
	return perPage, (page - 1) * perPage
}

// like wraps a free-text term for a LIKE match.
func like(term string) string {
	return "%" + term + "%"
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

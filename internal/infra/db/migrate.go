package db

import (
	"context"
	"database/sql"
)

// MigrateCache creates the key/value table used by the fallback cache.
// The DDL is portable between SQLite and PostgreSQL.
func MigrateCache(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS kv_cache (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`); err != nil {
		return err
	}
	return nil
}

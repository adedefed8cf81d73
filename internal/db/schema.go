package db

import (
	"context"
	"fmt"

	"warehouse-be/internal/config"

	"github.com/jmoiron/sqlx"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY,
		login         TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id       INTEGER PRIMARY KEY,
		name     TEXT NOT NULL,
		weight   TEXT NOT NULL,
		price    TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         INTEGER PRIMARY KEY,
		user_id    INTEGER REFERENCES users(id),
		product_id INTEGER REFERENCES products(id),
		quantity   INTEGER NOT NULL,
		status     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS change_history (
		id          INTEGER PRIMARY KEY,
		description TEXT NOT NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		login         TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id       BIGSERIAL PRIMARY KEY,
		name     TEXT NOT NULL,
		weight   TEXT NOT NULL,
		price    TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT REFERENCES users(id),
		product_id BIGINT REFERENCES products(id),
		quantity   INTEGER NOT NULL,
		status     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS change_history (
		id          BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL
	)`,
}

// Tables lists the tables owned by the schema, in creation order.
var Tables = []string{"users", "products", "orders", "change_history"}

func schemaFor(driver string) ([]string, error) {
	switch driver {
	case config.DriverSQLite:
		return sqliteSchema, nil
	case config.DriverPostgres:
		return postgresSchema, nil
	default:
		return nil, fmt.Errorf("no schema for driver %q", driver)
	}
}

// InitializeSchema creates the tables that do not exist yet. Running it
// again leaves existing tables and rows untouched.
func InitializeSchema(ctx context.Context, db *sqlx.DB) error {
	stmts, err := schemaFor(db.DriverName())
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema error: %w", err)
		}
	}
	return nil
}

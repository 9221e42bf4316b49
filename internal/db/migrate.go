package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations in order. The statement list is
// append-only; ALTER TABLE re-runs are tolerated so the whole list can be
// replayed against an existing database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS planner_settings (
		user_id       TEXT PRIMARY KEY,
		hours_per_day INTEGER NOT NULL DEFAULT 8
		              CHECK(hours_per_day BETWEEN 1 AND 24),
		work_days     TEXT NOT NULL DEFAULT '1,2,3,4,5',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		comment    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_customers_user ON customers(user_id)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		title           TEXT NOT NULL,
		customer_id     TEXT REFERENCES customers(id) ON DELETE SET NULL,
		category        TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'new'
		                CHECK(status IN ('new','in_progress','completed','canceled')),
		price_cents     INTEGER NOT NULL DEFAULT 0,
		comment         TEXT NOT NULL DEFAULT '',
		color           TEXT NOT NULL DEFAULT '',
		total_minutes   INTEGER NOT NULL DEFAULT 0,
		planned_date    TEXT,
		order_in_day    INTEGER,
		planned_minutes INTEGER NOT NULL DEFAULT 0,
		is_main_part    INTEGER NOT NULL DEFAULT 1,
		part_number     INTEGER NOT NULL DEFAULT 1 CHECK(part_number >= 1),
		parent_order_id TEXT REFERENCES orders(id) ON DELETE CASCADE,
		total_parts     INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_planned_date ON orders(user_id, planned_date)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_parent ON orders(parent_order_id)`,
}

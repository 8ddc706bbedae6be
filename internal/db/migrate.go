package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// migrations holds every schema statement in order. Statements are written
// to be re-runnable (IF NOT EXISTS) so Migrate can be called on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		schedule_numeric INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS skus (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		display_name TEXT,
		schedule_numeric INTEGER,
		sort_number INTEGER NOT NULL DEFAULT 0,
		skip_delivery_calc INTEGER NOT NULL DEFAULT 0,
		UNIQUE (product_id, code)
	)`,

	`CREATE TABLE IF NOT EXISTS product_group_skus (
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		group_code TEXT NOT NULL,
		position INTEGER NOT NULL,
		sku_code TEXT NOT NULL,
		PRIMARY KEY (product_id, group_code, position)
	)`,

	// Variant IDs are only unique within one product, so all variant
	// tables carry the product in their key.
	`CREATE TABLE IF NOT EXISTS variants (
		id TEXT NOT NULL,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		schedule_numeric INTEGER,
		PRIMARY KEY (product_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS variant_skus (
		product_id TEXT NOT NULL,
		variant_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		sku_code TEXT NOT NULL,
		PRIMARY KEY (product_id, variant_id, position),
		FOREIGN KEY (product_id, variant_id)
			REFERENCES variants(product_id, id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS variant_groups (
		product_id TEXT NOT NULL,
		variant_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		group_code TEXT NOT NULL,
		label TEXT NOT NULL,
		PRIMARY KEY (product_id, variant_id, position),
		FOREIGN KEY (product_id, variant_id)
			REFERENCES variants(product_id, id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_skus_product ON skus (product_id, code)`,
	`CREATE INDEX IF NOT EXISTS idx_variants_product ON variants (product_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_group_skus_product ON product_group_skus (product_id, group_code, position)`,
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres connects to the catalog database behind a Postgres DSN and
// ensures the schema exists. Pool sizing follows the edge deployment
// defaults; the driver owns retries and reconnection.
func OpenPostgres(dsn string) (*sql.DB, error) {
	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	database.SetMaxOpenConns(20)
	database.SetMaxIdleConns(10)
	database.SetConnMaxIdleTime(5 * time.Minute)
	database.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if err := ensurePostgresSchema(ctx, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return database, nil
}

func ensurePostgresSchema(ctx context.Context, database *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			schedule_numeric BIGINT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS skus (
			id BIGSERIAL PRIMARY KEY,
			product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			display_name TEXT,
			schedule_numeric BIGINT,
			sort_number INTEGER NOT NULL DEFAULT 0,
			skip_delivery_calc BOOLEAN NOT NULL DEFAULT FALSE,
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
			schedule_numeric BIGINT,
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
	}
	for _, stmt := range stmts {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

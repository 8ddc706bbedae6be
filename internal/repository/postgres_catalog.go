package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayase-dev/otodoke/internal/domain"
)

// PostgresCatalogRepo implements CatalogRepo on Postgres, for the edge
// deployment. Semantics match the SQLite variant exactly; only placeholder
// syntax and column types differ.
type PostgresCatalogRepo struct {
	db *sql.DB
}

// NewPostgresCatalogRepo creates a new PostgresCatalogRepo.
func NewPostgresCatalogRepo(db *sql.DB) *PostgresCatalogRepo {
	return &PostgresCatalogRepo{db: db}
}

func (r *PostgresCatalogRepo) GetProduct(ctx context.Context, productID string) (*domain.ProductRow, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, schedule_numeric FROM products WHERE id = $1`, productID)

	var p domain.ProductRow
	var schedule sql.NullInt64
	if err := row.Scan(&p.ProductID, &p.Title, &schedule); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading product: %w", err)
	}
	p.Schedule = scheduleFromNull(schedule)

	groupRows, err := r.db.QueryContext(ctx,
		`SELECT group_code, sku_code FROM product_group_skus
		WHERE product_id = $1 ORDER BY group_code, position`, p.ProductID)
	if err != nil {
		return nil, fmt.Errorf("loading group index: %w", err)
	}
	defer groupRows.Close()
	p.Groups = make(map[string][]string)
	for groupRows.Next() {
		var groupCode, skuCode string
		if err := groupRows.Scan(&groupCode, &skuCode); err != nil {
			return nil, fmt.Errorf("scanning group row: %w", err)
		}
		if _, ok := p.Groups[groupCode]; !ok {
			p.GroupOrder = append(p.GroupOrder, groupCode)
		}
		p.Groups[groupCode] = append(p.Groups[groupCode], skuCode)
	}
	if err := groupRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating group rows: %w", err)
	}

	variantRows, err := r.db.QueryContext(ctx,
		`SELECT id, schedule_numeric FROM variants
		WHERE product_id = $1 ORDER BY position`, p.ProductID)
	if err != nil {
		return nil, fmt.Errorf("loading variants: %w", err)
	}
	defer variantRows.Close()
	for variantRows.Next() {
		var v domain.VariantRow
		var vs sql.NullInt64
		if err := variantRows.Scan(&v.VariantID, &vs); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		v.Schedule = scheduleFromNull(vs)
		p.Variants = append(p.Variants, v)
	}
	if err := variantRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating variants: %w", err)
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		if err := r.loadVariantDetail(ctx, p.ProductID, v); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *PostgresCatalogRepo) loadVariantDetail(ctx context.Context, productID string, v *domain.VariantRow) error {
	skuRows, err := r.db.QueryContext(ctx,
		`SELECT sku_code FROM variant_skus
		WHERE product_id = $1 AND variant_id = $2 ORDER BY position`, productID, v.VariantID)
	if err != nil {
		return fmt.Errorf("loading variant skus: %w", err)
	}
	defer skuRows.Close()
	for skuRows.Next() {
		var code string
		if err := skuRows.Scan(&code); err != nil {
			return fmt.Errorf("scanning variant sku: %w", err)
		}
		v.SKUCodes = append(v.SKUCodes, code)
	}
	if err := skuRows.Err(); err != nil {
		return fmt.Errorf("iterating variant skus: %w", err)
	}

	groupRows, err := r.db.QueryContext(ctx,
		`SELECT group_code, label FROM variant_groups
		WHERE product_id = $1 AND variant_id = $2 ORDER BY position`, productID, v.VariantID)
	if err != nil {
		return fmt.Errorf("loading variant groups: %w", err)
	}
	defer groupRows.Close()
	for groupRows.Next() {
		var g domain.GroupRow
		if err := groupRows.Scan(&g.Code, &g.Label); err != nil {
			return fmt.Errorf("scanning variant group: %w", err)
		}
		v.Groups = append(v.Groups, g)
	}
	if err := groupRows.Err(); err != nil {
		return fmt.Errorf("iterating variant groups: %w", err)
	}
	return nil
}

func (r *PostgresCatalogRepo) GetSKUs(ctx context.Context, productID string, codes []string) ([]domain.SKURow, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	marks := make([]string, len(codes))
	args := make([]interface{}, 0, len(codes)+1)
	args = append(args, productID)
	for i, c := range codes {
		marks[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, c)
	}
	query := fmt.Sprintf(
		`SELECT id, code, name, display_name, schedule_numeric, sort_number, skip_delivery_calc
		FROM skus WHERE product_id = $1 AND code IN (%s) ORDER BY sort_number, id`,
		strings.Join(marks, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading skus: %w", err)
	}
	defer rows.Close()

	var out []domain.SKURow
	for rows.Next() {
		var s domain.SKURow
		var displayName sql.NullString
		var schedule sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &displayName, &schedule, &s.SortNumber, &s.SkipDeliveryCalc); err != nil {
			return nil, fmt.Errorf("scanning sku: %w", err)
		}
		s.DisplayName = displayName.String
		s.Schedule = scheduleFromNull(schedule)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating skus: %w", err)
	}
	return out, nil
}

func (r *PostgresCatalogRepo) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.title, COUNT(v.id)
		FROM products p LEFT JOIN variants v ON v.product_id = p.id
		GROUP BY p.id, p.title ORDER BY MIN(p.created_at), p.id`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductSummary
	for rows.Next() {
		var s domain.ProductSummary
		if err := rows.Scan(&s.ProductID, &s.Title, &s.VariantCount); err != nil {
			return nil, fmt.Errorf("scanning product summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product summaries: %w", err)
	}
	return out, nil
}

func (r *PostgresCatalogRepo) UpsertProduct(ctx context.Context, row *domain.ProductRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting upsert transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO products (id, title, schedule_numeric, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title,
			schedule_numeric = EXCLUDED.schedule_numeric,
			updated_at = EXCLUDED.updated_at`,
		row.ProductID, row.Title, scheduleToValue(row.Schedule), now, now)
	if err != nil {
		return fmt.Errorf("upserting product: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM product_group_skus WHERE product_id = $1`, row.ProductID); err != nil {
		return fmt.Errorf("clearing group index: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM variants WHERE product_id = $1`, row.ProductID); err != nil {
		return fmt.Errorf("clearing variants: %w", err)
	}

	order := row.GroupOrder
	if len(order) == 0 {
		for code := range row.Groups {
			order = append(order, code)
		}
	}
	for _, groupCode := range order {
		for pos, skuCode := range row.Groups[groupCode] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO product_group_skus (product_id, group_code, position, sku_code)
				VALUES ($1, $2, $3, $4)`,
				row.ProductID, groupCode, pos, skuCode); err != nil {
				return fmt.Errorf("inserting group candidate: %w", err)
			}
		}
	}

	for pos, v := range row.Variants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO variants (id, product_id, position, schedule_numeric)
			VALUES ($1, $2, $3, $4)`,
			v.VariantID, row.ProductID, pos, scheduleToValue(v.Schedule)); err != nil {
			return fmt.Errorf("inserting variant: %w", err)
		}
		for i, code := range v.SKUCodes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO variant_skus (product_id, variant_id, position, sku_code)
				VALUES ($1, $2, $3, $4)`,
				row.ProductID, v.VariantID, i, code); err != nil {
				return fmt.Errorf("inserting variant sku: %w", err)
			}
		}
		for i, g := range v.Groups {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO variant_groups (product_id, variant_id, position, group_code, label)
				VALUES ($1, $2, $3, $4, $5)`,
				row.ProductID, v.VariantID, i, g.Code, g.Label); err != nil {
				return fmt.Errorf("inserting variant group: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	committed = true
	return nil
}

func (r *PostgresCatalogRepo) UpsertSKUs(ctx context.Context, productID string, rows []domain.SKURow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting sku upsert: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, s := range rows {
		if s.ID != 0 {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO skus (id, product_id, code, name, display_name, schedule_numeric, sort_number, skip_delivery_calc)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (product_id, code) DO UPDATE SET name = EXCLUDED.name,
					display_name = EXCLUDED.display_name,
					schedule_numeric = EXCLUDED.schedule_numeric,
					sort_number = EXCLUDED.sort_number,
					skip_delivery_calc = EXCLUDED.skip_delivery_calc`,
				s.ID, productID, s.Code, s.Name, nullableStr(s.DisplayName),
				scheduleToValue(s.Schedule), s.SortNumber, s.SkipDeliveryCalc)
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO skus (product_id, code, name, display_name, schedule_numeric, sort_number, skip_delivery_calc)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (product_id, code) DO UPDATE SET name = EXCLUDED.name,
					display_name = EXCLUDED.display_name,
					schedule_numeric = EXCLUDED.schedule_numeric,
					sort_number = EXCLUDED.sort_number,
					skip_delivery_calc = EXCLUDED.skip_delivery_calc`,
				productID, s.Code, s.Name, nullableStr(s.DisplayName),
				scheduleToValue(s.Schedule), s.SortNumber, s.SkipDeliveryCalc)
		}
		if err != nil {
			return fmt.Errorf("upserting sku %s: %w", s.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sku upsert: %w", err)
	}
	committed = true
	return nil
}

func (r *PostgresCatalogRepo) SetSKUSchedule(ctx context.Context, productID, code string, numeric *int64) (bool, error) {
	var value interface{}
	if numeric != nil {
		value = *numeric
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE skus SET schedule_numeric = $1 WHERE product_id = $2 AND code = $3`,
		value, productID, code)
	if err != nil {
		return false, fmt.Errorf("updating sku schedule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return affected > 0, nil
}

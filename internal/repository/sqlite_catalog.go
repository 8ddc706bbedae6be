package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayase-dev/otodoke/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo on a SQLite database. This is
// the default local store; the edge deployment uses the Postgres variant.
type SQLiteCatalogRepo struct {
	db *sql.DB
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(db *sql.DB) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: db}
}

func (r *SQLiteCatalogRepo) GetProduct(ctx context.Context, productID string) (*domain.ProductRow, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, schedule_numeric FROM products WHERE id = ?`, productID)

	var p domain.ProductRow
	var schedule sql.NullInt64
	if err := row.Scan(&p.ProductID, &p.Title, &schedule); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading product: %w", err)
	}
	p.Schedule = scheduleFromNull(schedule)

	if err := r.loadGroups(ctx, &p); err != nil {
		return nil, err
	}
	if err := r.loadVariants(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteCatalogRepo) loadGroups(ctx context.Context, p *domain.ProductRow) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT group_code, sku_code FROM product_group_skus
		WHERE product_id = ? ORDER BY group_code, position`, p.ProductID)
	if err != nil {
		return fmt.Errorf("loading group index: %w", err)
	}
	defer rows.Close()

	p.Groups = make(map[string][]string)
	for rows.Next() {
		var groupCode, skuCode string
		if err := rows.Scan(&groupCode, &skuCode); err != nil {
			return fmt.Errorf("scanning group row: %w", err)
		}
		if _, ok := p.Groups[groupCode]; !ok {
			p.GroupOrder = append(p.GroupOrder, groupCode)
		}
		p.Groups[groupCode] = append(p.Groups[groupCode], skuCode)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating group rows: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) loadVariants(ctx context.Context, p *domain.ProductRow) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, schedule_numeric FROM variants
		WHERE product_id = ? ORDER BY position`, p.ProductID)
	if err != nil {
		return fmt.Errorf("loading variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.VariantRow
		var schedule sql.NullInt64
		if err := rows.Scan(&v.VariantID, &schedule); err != nil {
			return fmt.Errorf("scanning variant: %w", err)
		}
		v.Schedule = scheduleFromNull(schedule)
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating variants: %w", err)
	}

	for i := range p.Variants {
		if err := r.loadVariantDetail(ctx, p.ProductID, &p.Variants[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteCatalogRepo) loadVariantDetail(ctx context.Context, productID string, v *domain.VariantRow) error {
	skuRows, err := r.db.QueryContext(ctx,
		`SELECT sku_code FROM variant_skus
		WHERE product_id = ? AND variant_id = ? ORDER BY position`, productID, v.VariantID)
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
		WHERE product_id = ? AND variant_id = ? ORDER BY position`, productID, v.VariantID)
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

func (r *SQLiteCatalogRepo) GetSKUs(ctx context.Context, productID string, codes []string) ([]domain.SKURow, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(codes)+1)
	args = append(args, productID)
	for _, c := range codes {
		args = append(args, c)
	}
	query := fmt.Sprintf(
		`SELECT id, code, name, display_name, schedule_numeric, sort_number, skip_delivery_calc
		FROM skus WHERE product_id = ? AND code IN (%s) ORDER BY sort_number, id`,
		placeholders(len(codes)))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading skus: %w", err)
	}
	defer rows.Close()

	var out []domain.SKURow
	for rows.Next() {
		s, err := scanSKURow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating skus: %w", err)
	}
	return out, nil
}

func scanSKURow(rows *sql.Rows) (domain.SKURow, error) {
	var s domain.SKURow
	var displayName sql.NullString
	var schedule sql.NullInt64
	var skip int
	if err := rows.Scan(&s.ID, &s.Code, &s.Name, &displayName, &schedule, &s.SortNumber, &skip); err != nil {
		return domain.SKURow{}, fmt.Errorf("scanning sku: %w", err)
	}
	s.DisplayName = displayName.String
	s.Schedule = scheduleFromNull(schedule)
	s.SkipDeliveryCalc = skip != 0
	return s, nil
}

func (r *SQLiteCatalogRepo) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.title, COUNT(v.id)
		FROM products p LEFT JOIN variants v ON v.product_id = p.id
		GROUP BY p.id, p.title ORDER BY p.created_at, p.id`)
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

func (r *SQLiteCatalogRepo) UpsertProduct(ctx context.Context, row *domain.ProductRow) error {
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

	now := nowUTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO products (id, title, schedule_numeric, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title,
			schedule_numeric = excluded.schedule_numeric,
			updated_at = excluded.updated_at`,
		row.ProductID, row.Title, scheduleToValue(row.Schedule), now, now)
	if err != nil {
		return fmt.Errorf("upserting product: %w", err)
	}

	// Group index and variants are replaced wholesale; their ordering is
	// positional and cheaper to rewrite than to diff.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM product_group_skus WHERE product_id = ?`, row.ProductID); err != nil {
		return fmt.Errorf("clearing group index: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM variants WHERE product_id = ?`, row.ProductID); err != nil {
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
				VALUES (?, ?, ?, ?)`,
				row.ProductID, groupCode, pos, skuCode); err != nil {
				return fmt.Errorf("inserting group candidate: %w", err)
			}
		}
	}

	for pos, v := range row.Variants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO variants (id, product_id, position, schedule_numeric)
			VALUES (?, ?, ?, ?)`,
			v.VariantID, row.ProductID, pos, scheduleToValue(v.Schedule)); err != nil {
			return fmt.Errorf("inserting variant: %w", err)
		}
		for i, code := range v.SKUCodes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO variant_skus (product_id, variant_id, position, sku_code)
				VALUES (?, ?, ?, ?)`,
				row.ProductID, v.VariantID, i, code); err != nil {
				return fmt.Errorf("inserting variant sku: %w", err)
			}
		}
		for i, g := range v.Groups {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO variant_groups (product_id, variant_id, position, group_code, label)
				VALUES (?, ?, ?, ?, ?)`,
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

func (r *SQLiteCatalogRepo) UpsertSKUs(ctx context.Context, productID string, rows []domain.SKURow) error {
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
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(product_id, code) DO UPDATE SET name = excluded.name,
					display_name = excluded.display_name,
					schedule_numeric = excluded.schedule_numeric,
					sort_number = excluded.sort_number,
					skip_delivery_calc = excluded.skip_delivery_calc`,
				s.ID, productID, s.Code, s.Name, nullableStr(s.DisplayName),
				scheduleToValue(s.Schedule), s.SortNumber, boolToInt(s.SkipDeliveryCalc))
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO skus (product_id, code, name, display_name, schedule_numeric, sort_number, skip_delivery_calc)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(product_id, code) DO UPDATE SET name = excluded.name,
					display_name = excluded.display_name,
					schedule_numeric = excluded.schedule_numeric,
					sort_number = excluded.sort_number,
					skip_delivery_calc = excluded.skip_delivery_calc`,
				productID, s.Code, s.Name, nullableStr(s.DisplayName),
				scheduleToValue(s.Schedule), s.SortNumber, boolToInt(s.SkipDeliveryCalc))
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

func (r *SQLiteCatalogRepo) SetSKUSchedule(ctx context.Context, productID, code string, numeric *int64) (bool, error) {
	var value interface{}
	if numeric != nil {
		value = *numeric
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE skus SET schedule_numeric = ? WHERE product_id = ? AND code = ?`,
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

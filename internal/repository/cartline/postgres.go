package cartline

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns the authoritative per-customer line store.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context, ownerID string) ([]domain.LineItem, error) {
	const q = `
SELECT id::text, product_id, variant_id, variant_name, sku_variant_id, sku_variant_name,
       product_name, product_code, image_url, unit_price_cents, discounted, discount_price_cents, quantity
FROM cart_lines
WHERE customer_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.LineItem
	for rows.Next() {
		var line domain.LineItem
		if err := rows.Scan(
			&line.ID,
			&line.ProductID,
			&line.VariantID,
			&line.VariantName,
			&line.SKUVariantID,
			&line.SKUVariantName,
			&line.ProductName,
			&line.ProductCode,
			&line.ImageURL,
			&line.UnitPriceCents,
			&line.Discounted,
			&line.DiscountPriceCents,
			&line.Quantity,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Upsert relies on the unique index over the normalized merge tuple so that
// concurrent adds to the same configuration increment atomically instead of
// racing on a read-modify-write.
func (r *postgresRepo) Upsert(ctx context.Context, ownerID string, line domain.LineItem) error {
	const q = `
INSERT INTO cart_lines (
    id, customer_id, product_id, variant_id, variant_name, sku_variant_id, sku_variant_name,
    product_name, product_code, image_url, unit_price_cents, discounted, discount_price_cents, quantity
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (customer_id, product_id, variant_id, sku_variant_id) DO UPDATE
SET quantity             = cart_lines.quantity + EXCLUDED.quantity,
    unit_price_cents     = EXCLUDED.unit_price_cents,
    discounted           = EXCLUDED.discounted,
    discount_price_cents = EXCLUDED.discount_price_cents
`
	_, err := r.pool.Exec(ctx, q,
		line.ID,
		ownerID,
		line.ProductID,
		line.VariantID,
		line.VariantName,
		line.SKUVariantID,
		line.SKUVariantName,
		line.ProductName,
		line.ProductCode,
		line.ImageURL,
		line.UnitPriceCents,
		line.Discounted,
		line.DiscountPriceCents,
		line.Quantity,
	)
	return err
}

func (r *postgresRepo) Remove(ctx context.Context, ownerID, lineID string) error {
	// A malformed id cannot match any line, and feeding it to the uuid
	// column would raise a cast error instead of the no-op callers expect.
	if _, err := uuid.Parse(lineID); err != nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE customer_id = $1 AND id = $2
`, ownerID, lineID)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, ownerID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE customer_id = $1`, ownerID)
	return err
}

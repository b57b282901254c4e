package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	// Ids arrive from request payloads; a malformed one is simply not found.
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
SELECT id::text, name, code, image_url, price_cents, discounted, discount_price_cents, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID,
		&p.Name,
		&p.Code,
		&p.ImageURL,
		&p.PriceCents,
		&p.Discounted,
		&p.DiscountPriceCents,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	variants, err := r.listVariants(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants

	skuVariants, err := r.listSKUVariants(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.SKUVariants = skuVariants

	return &p, nil
}

func (r *postgresRepo) GetSKUVariant(ctx context.Context, id string) (*domain.SKUVariant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
SELECT id::text, product_id::text, name, price_cents, discounted, discount_price_cents
FROM sku_variants
WHERE id = $1
`
	var v domain.SKUVariant
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&v.ID,
		&v.ProductID,
		&v.Name,
		&v.PriceCents,
		&v.Discounted,
		&v.DiscountPriceCents,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) listVariants(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	const q = `
SELECT id::text, product_id::text, name
FROM product_variants
WHERE product_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProductVariant
	for rows.Next() {
		var v domain.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *postgresRepo) listSKUVariants(ctx context.Context, productID string) ([]domain.SKUVariant, error) {
	const q = `
SELECT id::text, product_id::text, name, price_cents, discounted, discount_price_cents
FROM sku_variants
WHERE product_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SKUVariant
	for rows.Next() {
		var v domain.SKUVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceCents, &v.Discounted, &v.DiscountPriceCents); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

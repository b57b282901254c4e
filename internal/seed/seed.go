package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type skuSeed struct {
	Name               string
	PriceCents         int64
	Discounted         bool
	DiscountPriceCents int64
}

type productSeed struct {
	Code               string
	Name               string
	ImageURL           string
	PriceCents         int64
	Discounted         bool
	DiscountPriceCents int64
	Variants           []string
	SKUVariants        []skuSeed
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Code:       "WALNUT-BOARD",
			Name:       "Walnut Cutting Board",
			ImageURL:   "https://cdn.example.com/walnut-board.jpg",
			PriceCents: 5400,
			Variants:   []string{"Small", "Large"},
		},
		{
			Code:               "LINEN-APRON",
			Name:               "Linen Apron",
			ImageURL:           "https://cdn.example.com/linen-apron.jpg",
			PriceCents:         3900,
			Discounted:         true,
			DiscountPriceCents: 2900,
		},
		{
			Code:       "CHEF-KNIFE",
			Name:       "Chef Knife",
			ImageURL:   "https://cdn.example.com/chef-knife.jpg",
			PriceCents: 12900,
			SKUVariants: []skuSeed{
				{Name: "18 cm", PriceCents: 12900},
				{Name: "21 cm", PriceCents: 14900, Discounted: true, DiscountPriceCents: 13400},
			},
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Code, err)
		}
	}

	if err := upsertShippingSettings(ctx, pool); err != nil {
		return fmt.Errorf("upsert shipping settings: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (code, name, image_url, price_cents, discounted, discount_price_cents)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0))
ON CONFLICT (code) WHERE code <> '' DO UPDATE
SET name                 = EXCLUDED.name,
    image_url            = EXCLUDED.image_url,
    price_cents          = EXCLUDED.price_cents,
    discounted           = EXCLUDED.discounted,
    discount_price_cents = EXCLUDED.discount_price_cents
RETURNING id::text
`
	var productID string
	if err := pool.QueryRow(ctx, q, p.Code, p.Name, p.ImageURL, p.PriceCents, p.Discounted, p.DiscountPriceCents).Scan(&productID); err != nil {
		return err
	}

	for _, name := range p.Variants {
		const vq = `
INSERT INTO product_variants (product_id, name)
VALUES ($1, $2)
ON CONFLICT (product_id, name) DO NOTHING
`
		if _, err := pool.Exec(ctx, vq, productID, name); err != nil {
			return err
		}
	}

	for _, sku := range p.SKUVariants {
		const sq = `
INSERT INTO sku_variants (product_id, name, price_cents, discounted, discount_price_cents)
VALUES ($1, $2, $3, $4, NULLIF($5, 0))
ON CONFLICT (product_id, name) DO UPDATE
SET price_cents          = EXCLUDED.price_cents,
    discounted           = EXCLUDED.discounted,
    discount_price_cents = EXCLUDED.discount_price_cents
`
		if _, err := pool.Exec(ctx, sq, productID, sku.Name, sku.PriceCents, sku.Discounted, sku.DiscountPriceCents); err != nil {
			return err
		}
	}

	return nil
}

func upsertShippingSettings(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO shipping_settings (id, default_price_cents, free_shipping_enabled, free_threshold_cents)
VALUES (1, 2500, true, 50000)
ON CONFLICT (id) DO NOTHING
`
	_, err := pool.Exec(ctx, q)
	return err
}

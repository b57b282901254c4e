package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

// The table holds a single row pinned to id 1.
type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetShipping(ctx context.Context) (*domain.ShippingSettings, error) {
	const q = `
SELECT default_price_cents, free_shipping_enabled, free_threshold_cents, updated_at
FROM shipping_settings
WHERE id = 1
`
	var s domain.ShippingSettings
	if err := r.pool.QueryRow(ctx, q).Scan(
		&s.DefaultPriceCents,
		&s.FreeShippingEnabled,
		&s.FreeThresholdCents,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) UpsertShipping(ctx context.Context, s domain.ShippingSettings) (*domain.ShippingSettings, error) {
	const q = `
INSERT INTO shipping_settings (id, default_price_cents, free_shipping_enabled, free_threshold_cents, updated_at)
VALUES (1, $1, $2, $3, now())
ON CONFLICT (id) DO UPDATE
SET default_price_cents   = EXCLUDED.default_price_cents,
    free_shipping_enabled = EXCLUDED.free_shipping_enabled,
    free_threshold_cents  = EXCLUDED.free_threshold_cents,
    updated_at            = now()
RETURNING default_price_cents, free_shipping_enabled, free_threshold_cents, updated_at
`
	var out domain.ShippingSettings
	if err := r.pool.QueryRow(ctx, q, s.DefaultPriceCents, s.FreeShippingEnabled, s.FreeThresholdCents).Scan(
		&out.DefaultPriceCents,
		&out.FreeShippingEnabled,
		&out.FreeThresholdCents,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

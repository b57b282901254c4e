package settings

import (
	"context"

	"storefront/internal/domain"
)

// Repository reads and writes the shipping-settings singleton. The checkout
// flow only calls GetShipping; the upsert belongs to the back-office surface.
type Repository interface {
	GetShipping(ctx context.Context) (*domain.ShippingSettings, error)
	UpsertShipping(ctx context.Context, s domain.ShippingSettings) (*domain.ShippingSettings, error)
}

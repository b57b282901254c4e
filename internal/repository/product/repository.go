package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository reads the catalog. The cart only ever needs point reads: the
// product a line denormalizes from, and the SKU variant whose live price
// overrides whatever the caller sent.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetSKUVariant(ctx context.Context, id string) (*domain.SKUVariant, error)
}

package cartline

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists one cart representation's line items. The owner id is a
// customer id for the authoritative store and a guest session id for the
// guest store.
type Repository interface {
	// List returns the owner's lines in insertion order.
	List(ctx context.Context, ownerID string) ([]domain.LineItem, error)
	// Upsert merges the line into the cart: a line with a matching merge
	// tuple has its quantity incremented and price fields refreshed,
	// otherwise the line is inserted as-is.
	Upsert(ctx context.Context, ownerID string, line domain.LineItem) error
	// Remove deletes the line with the given id. Removing an absent line is
	// a no-op, not an error.
	Remove(ctx context.Context, ownerID, lineID string) error
	// Clear deletes every line. Clearing an empty cart is a no-op.
	Clear(ctx context.Context, ownerID string) error
}

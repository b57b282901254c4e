// Package pricing derives shipping cost and grand total from a cart
// subtotal and the shipping settings. It is pure computation; callers fetch
// the settings once per checkout and recompute whenever the cart changes.
package pricing

import "storefront/internal/domain"

// Quote is the priced result for one cart snapshot.
type Quote struct {
	SubtotalCents int64 `json:"subtotalCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`
}

// Compute applies the free-shipping threshold rule: shipping is waived when
// the rule is enabled and the subtotal reaches the threshold, otherwise the
// configured default price applies.
func Compute(subtotalCents int64, s domain.ShippingSettings) Quote {
	shipping := s.DefaultPriceCents
	if s.FreeShippingEnabled && subtotalCents >= s.FreeThresholdCents {
		shipping = 0
	}
	return Quote{
		SubtotalCents: subtotalCents,
		ShippingCents: shipping,
		TotalCents:    subtotalCents + shipping,
	}
}

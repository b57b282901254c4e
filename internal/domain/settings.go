package domain

import "time"

// ShippingSettings is the singleton shipping configuration owned by the
// back-office. The checkout flow only reads it.
type ShippingSettings struct {
	DefaultPriceCents   int64     `json:"defaultPriceCents"`
	FreeShippingEnabled bool      `json:"freeShippingEnabled"`
	FreeThresholdCents  int64     `json:"freeThresholdCents"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

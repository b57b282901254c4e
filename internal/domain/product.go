package domain

import "time"

// Product is a catalog entry. Variants carry display-only grouping (e.g. a
// color); SKU variants are purchasable sub-configurations with their own
// price and discount.
type Product struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Code               string           `json:"code"`
	ImageURL           string           `json:"imageUrl,omitempty"`
	PriceCents         int64            `json:"priceCents"`
	Discounted         bool             `json:"discounted,omitempty"`
	DiscountPriceCents *int64           `json:"discountPriceCents,omitempty"`
	Variants           []ProductVariant `json:"variants,omitempty"`
	SKUVariants        []SKUVariant     `json:"skuVariants,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}

type ProductVariant struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

type SKUVariant struct {
	ID                 string `json:"id"`
	ProductID          string `json:"productId"`
	Name               string `json:"name"`
	PriceCents         int64  `json:"priceCents"`
	Discounted         bool   `json:"discounted,omitempty"`
	DiscountPriceCents *int64 `json:"discountPriceCents,omitempty"`
}

// EffectivePriceCents mirrors LineItem.EffectivePriceCents for the live
// SKU-variant record.
func (v SKUVariant) EffectivePriceCents() int64 {
	if v.Discounted && v.DiscountPriceCents != nil {
		return *v.DiscountPriceCents
	}
	return v.PriceCents
}

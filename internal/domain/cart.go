package domain

import "strings"

// LineItem is one purchasable configuration in a cart. Display fields are
// copied from the product at add time so a cart renders without re-fetching
// the catalog.
type LineItem struct {
	ID                 string `json:"id"`
	ProductID          string `json:"productId"`
	VariantID          string `json:"variantId,omitempty"`
	VariantName        string `json:"variantName,omitempty"`
	SKUVariantID       string `json:"skuVariantId,omitempty"`
	SKUVariantName     string `json:"skuVariantName,omitempty"`
	ProductName        string `json:"productName"`
	ProductCode        string `json:"productCode,omitempty"`
	ImageURL           string `json:"imageUrl,omitempty"`
	UnitPriceCents     int64  `json:"unitPriceCents"`
	Discounted         bool   `json:"discounted,omitempty"`
	DiscountPriceCents *int64 `json:"discountPriceCents,omitempty"`
	Quantity           int    `json:"quantity"`
}

// EffectivePriceCents is the price actually charged per unit: the discounted
// price when a discount is active, otherwise the base price.
func (l LineItem) EffectivePriceCents() int64 {
	if l.Discounted && l.DiscountPriceCents != nil {
		return *l.DiscountPriceCents
	}
	return l.UnitPriceCents
}

// MergeKey identifies the purchasable configuration of a line.
func (l LineItem) MergeKey() string {
	return MergeKey(l.ProductID, l.VariantID, l.SKUVariantID)
}

// MergeKey builds the uniqueness key for a (product, variant, SKU-variant)
// tuple. An absent variant and an empty one are the same configuration, so
// both normalize to "".
func MergeKey(productID, variantID, skuVariantID string) string {
	return strings.TrimSpace(productID) + "|" + strings.TrimSpace(variantID) + "|" + strings.TrimSpace(skuVariantID)
}

// Cart is the ordered collection of line items. Subtotal and item count are
// derived, never stored.
type Cart struct {
	Lines []LineItem `json:"lineItems"`
}

// SubtotalCents recomputes the subtotal over all lines.
func (c Cart) SubtotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += int64(l.Quantity) * l.EffectivePriceCents()
	}
	return total
}

// ItemCount is the sum of all line quantities.
func (c Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

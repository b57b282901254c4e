package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

var (
	// ErrProductNotFound is returned when the referenced product or variant
	// does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrQuantityInvalid is returned for non-positive quantities.
	ErrQuantityInvalid = errors.New("quantity must be positive")
)

// Service is the single source of truth for a session's cart contents and
// derived totals, abstracting over the guest and customer representations.
type Service struct {
	guest    lineRepo
	customer lineRepo
	products productRepo
	logger   *log.Logger
}

type lineRepo interface {
	List(ctx context.Context, ownerID string) ([]domain.LineItem, error)
	Upsert(ctx context.Context, ownerID string, line domain.LineItem) error
	Remove(ctx context.Context, ownerID, lineID string) error
	Clear(ctx context.Context, ownerID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetSKUVariant(ctx context.Context, id string) (*domain.SKUVariant, error)
}

// New creates a Service over the two line stores.
func New(guest, customer lineRepo, products productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{guest: guest, customer: customer, products: products, logger: logger}
}

// View is a cart snapshot with its derived totals. Totals are recomputed on
// every read, never cached.
type View struct {
	Lines         []domain.LineItem `json:"lineItems"`
	ItemCount     int               `json:"itemCount"`
	SubtotalCents int64             `json:"subtotalCents"`
}

// AddItemInput references a purchasable configuration by id. Display fields
// and prices are resolved from the catalog, never taken from the caller.
type AddItemInput struct {
	ProductID    string `json:"productId"`
	VariantID    string `json:"variantId"`
	SKUVariantID string `json:"skuVariantId"`
	Quantity     int    `json:"quantity"`
}

// AddItem merges a configuration into the active representation: a line with
// a matching (product, variant, SKU-variant) tuple has its quantity
// incremented, otherwise a new line is created with a fresh id. SKU-backed
// lines always take price and discount from a live SKU-variant lookup.
func (s *Service) AddItem(ctx context.Context, b Backing, in AddItemInput) error {
	if in.Quantity <= 0 {
		return ErrQuantityInvalid
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return ErrProductNotFound
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	line := domain.LineItem{
		ID:                 uuid.NewString(),
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductCode:        product.Code,
		ImageURL:           product.ImageURL,
		UnitPriceCents:     product.PriceCents,
		Discounted:         product.Discounted,
		DiscountPriceCents: product.DiscountPriceCents,
		Quantity:           in.Quantity,
	}

	if variantID := strings.TrimSpace(in.VariantID); variantID != "" {
		variant := findVariant(product.Variants, variantID)
		if variant == nil {
			return ErrProductNotFound
		}
		line.VariantID = variant.ID
		line.VariantName = variant.Name
	}

	if skuID := strings.TrimSpace(in.SKUVariantID); skuID != "" {
		sku, err := s.products.GetSKUVariant(ctx, skuID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if sku.ProductID != product.ID {
			return ErrProductNotFound
		}
		line.SKUVariantID = sku.ID
		line.SKUVariantName = sku.Name
		line.UnitPriceCents = sku.PriceCents
		line.Discounted = sku.Discounted
		line.DiscountPriceCents = sku.DiscountPriceCents
	}

	return s.repoFor(b).Upsert(ctx, b.OwnerID(), line)
}

// AddLine merges an already-materialized line into the backing, preserving
// its denormalized fields but assigning a fresh id and refreshing the price
// of SKU-backed lines. This is the primitive the reconciler and Reconstruct
// drive, so the same tuple-merge semantics apply.
func (s *Service) AddLine(ctx context.Context, b Backing, line domain.LineItem) error {
	if line.Quantity <= 0 {
		return ErrQuantityInvalid
	}
	line.ID = uuid.NewString()
	if line.SKUVariantID != "" {
		sku, err := s.products.GetSKUVariant(ctx, line.SKUVariantID)
		if err != nil {
			// Keep the stored price rather than dropping the line.
			s.logger.Printf("cart: refresh sku %s: %v", line.SKUVariantID, err)
		} else {
			line.SKUVariantName = sku.Name
			line.UnitPriceCents = sku.PriceCents
			line.Discounted = sku.Discounted
			line.DiscountPriceCents = sku.DiscountPriceCents
		}
	}
	return s.repoFor(b).Upsert(ctx, b.OwnerID(), line)
}

// RemoveItem deletes the line with that id. Removing an absent line is a
// no-op.
func (s *Service) RemoveItem(ctx context.Context, b Backing, lineID string) error {
	return s.repoFor(b).Remove(ctx, b.OwnerID(), lineID)
}

// Clear empties the active representation. Used after a successful order.
func (s *Service) Clear(ctx context.Context, b Backing) error {
	return s.repoFor(b).Clear(ctx, b.OwnerID())
}

// ClearGuest empties only the guest representation, leaving any customer
// cart untouched. Idempotent; used at logout.
func (s *Service) ClearGuest(ctx context.Context, sessionID string) error {
	return s.guest.Clear(ctx, sessionID)
}

// Reconstruct clears the backing and re-adds the given lines one at a time.
// Used to drop server-rejected lines after a partial checkout failure while
// keeping the valid remainder. Each write is its own unit of work; a crash
// mid-way can leave a partially rebuilt cart.
func (s *Service) Reconstruct(ctx context.Context, b Backing, lines []domain.LineItem) error {
	if err := s.repoFor(b).Clear(ctx, b.OwnerID()); err != nil {
		return err
	}
	for _, line := range lines {
		if err := s.AddLine(ctx, b, line); err != nil {
			return fmt.Errorf("re-add line for product %s: %w", line.ProductID, err)
		}
	}
	return nil
}

// Lines lists the backing's raw lines without price refresh.
func (s *Service) Lines(ctx context.Context, b Backing) ([]domain.LineItem, error) {
	return s.repoFor(b).List(ctx, b.OwnerID())
}

// Get returns the cart snapshot with recomputed totals. SKU-backed lines
// reflect the current SKU-variant price at read time; plain lines trust the
// price stored at add time.
func (s *Service) Get(ctx context.Context, b Backing) (View, error) {
	lines, err := s.repoFor(b).List(ctx, b.OwnerID())
	if err != nil {
		return View{}, err
	}
	for i := range lines {
		if lines[i].SKUVariantID == "" {
			continue
		}
		sku, err := s.products.GetSKUVariant(ctx, lines[i].SKUVariantID)
		if err != nil {
			s.logger.Printf("cart: refresh sku %s: %v", lines[i].SKUVariantID, err)
			continue
		}
		lines[i].UnitPriceCents = sku.PriceCents
		lines[i].Discounted = sku.Discounted
		lines[i].DiscountPriceCents = sku.DiscountPriceCents
	}
	agg := domain.Cart{Lines: lines}
	return View{
		Lines:         lines,
		ItemCount:     agg.ItemCount(),
		SubtotalCents: agg.SubtotalCents(),
	}, nil
}

func (s *Service) repoFor(b Backing) lineRepo {
	if b.Kind() == CustomerKind {
		return s.customer
	}
	return s.guest
}

func findVariant(variants []domain.ProductVariant, id string) *domain.ProductVariant {
	for i := range variants {
		if variants[i].ID == id {
			return &variants[i]
		}
	}
	return nil
}

package product

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

func TestGetByIDMalformedID(t *testing.T) {
	repo := NewPostgres(nil, nil)
	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetSKUVariantMalformedID(t *testing.T) {
	repo := NewPostgres(nil, nil)
	if _, err := repo.GetSKUVariant(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

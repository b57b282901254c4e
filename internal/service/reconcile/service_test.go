package reconcile

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
)

type stubStore struct {
	guest       map[string][]domain.LineItem
	customer    map[string][]domain.LineItem
	failProduct string
	cleared     []string
}

func newStubStore() *stubStore {
	return &stubStore{
		guest:    map[string][]domain.LineItem{},
		customer: map[string][]domain.LineItem{},
	}
}

func (s *stubStore) Lines(_ context.Context, b cart.Backing) ([]domain.LineItem, error) {
	if b.Kind() == cart.CustomerKind {
		return s.customer[b.OwnerID()], nil
	}
	return s.guest[b.OwnerID()], nil
}

func (s *stubStore) AddLine(_ context.Context, b cart.Backing, line domain.LineItem) error {
	if line.ProductID == s.failProduct {
		return errors.New("write failed")
	}
	lines := s.customer[b.OwnerID()]
	for i := range lines {
		if lines[i].MergeKey() == line.MergeKey() {
			lines[i].Quantity += line.Quantity
			s.customer[b.OwnerID()] = lines
			return nil
		}
	}
	s.customer[b.OwnerID()] = append(lines, line)
	return nil
}

func (s *stubStore) ClearGuest(_ context.Context, sessionID string) error {
	s.cleared = append(s.cleared, sessionID)
	delete(s.guest, sessionID)
	return nil
}

func TestMergeOnLoginMergesIntoExistingLines(t *testing.T) {
	store := newStubStore()
	store.guest["sess"] = []domain.LineItem{
		{ID: "a", ProductID: "pa", Quantity: 3},
		{ID: "b", ProductID: "pb", Quantity: 1},
	}
	// Customer already holds a line matching A's tuple with quantity 2.
	store.customer["cust"] = []domain.LineItem{
		{ID: "remote-a", ProductID: "pa", Quantity: 2},
	}

	svc := New(store, nil)
	if err := svc.MergeOnLogin(context.Background(), "sess", "cust"); err != nil {
		t.Fatalf("merge: %v", err)
	}

	lines := store.customer["cust"]
	if len(lines) != 2 {
		t.Fatalf("expected 2 customer lines, got %d", len(lines))
	}
	byProduct := map[string]int{}
	for _, l := range lines {
		byProduct[l.ProductID] = l.Quantity
	}
	if byProduct["pa"] != 5 {
		t.Fatalf("expected merged quantity 5 for pa, got %d", byProduct["pa"])
	}
	if byProduct["pb"] != 1 {
		t.Fatalf("expected quantity 1 for pb, got %d", byProduct["pb"])
	}
	if got := len(store.guest["sess"]); got != 0 {
		t.Fatalf("guest cart not cleared, %d lines left", got)
	}
}

func TestMergeOnLoginEmptyGuestCartDoesNothing(t *testing.T) {
	store := newStubStore()
	svc := New(store, nil)

	if err := svc.MergeOnLogin(context.Background(), "sess", "cust"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(store.cleared) != 0 {
		t.Fatalf("expected no clear for empty guest cart")
	}
}

func TestMergeOnLoginIsBestEffort(t *testing.T) {
	store := newStubStore()
	store.guest["sess"] = []domain.LineItem{
		{ID: "a", ProductID: "pa", Quantity: 1},
		{ID: "b", ProductID: "pb", Quantity: 2},
		{ID: "c", ProductID: "pc", Quantity: 3},
	}
	store.failProduct = "pb"

	svc := New(store, nil)
	err := svc.MergeOnLogin(context.Background(), "sess", "cust")
	if err == nil {
		t.Fatalf("expected joined error for dropped line")
	}

	// The failing line does not stop the others, and the guest cart is
	// cleared anyway.
	byProduct := map[string]int{}
	for _, l := range store.customer["cust"] {
		byProduct[l.ProductID] = l.Quantity
	}
	if byProduct["pa"] != 1 || byProduct["pc"] != 3 {
		t.Fatalf("expected pa and pc migrated, got %v", byProduct)
	}
	if _, ok := byProduct["pb"]; ok {
		t.Fatalf("failed line unexpectedly migrated")
	}
	if len(store.cleared) != 1 || store.cleared[0] != "sess" {
		t.Fatalf("guest cart not cleared after partial failure")
	}
}

// Package reconcile migrates a guest cart into a just-authenticated
// customer's cart. It runs once per login transition, driven by the login
// handler, never from a render path.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
)

type cartStore interface {
	Lines(ctx context.Context, b cart.Backing) ([]domain.LineItem, error)
	AddLine(ctx context.Context, b cart.Backing, line domain.LineItem) error
	ClearGuest(ctx context.Context, sessionID string) error
}

type Service struct {
	carts  cartStore
	logger *log.Logger
}

func New(carts cartStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{carts: carts, logger: logger}
}

// MergeOnLogin copies every guest line into the customer's cart and then
// clears the guest cart. Lines are migrated sequentially so quantity merges
// for matching tuples never race against each other. The migration is
// best-effort: a failed line does not stop the remaining ones, and the guest
// cart is cleared regardless; the joined error reports what was dropped.
func (s *Service) MergeOnLogin(ctx context.Context, guestSessionID, customerID string) error {
	lines, err := s.carts.Lines(ctx, cart.GuestBacking(guestSessionID))
	if err != nil {
		return fmt.Errorf("read guest cart: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	target := cart.CustomerBacking(customerID)
	var errs []error
	for _, line := range lines {
		if err := s.carts.AddLine(ctx, target, line); err != nil {
			s.logger.Printf("reconcile: migrate product %s for customer %s: %v", line.ProductID, customerID, err)
			errs = append(errs, fmt.Errorf("migrate product %s: %w", line.ProductID, err))
		}
	}

	if err := s.carts.ClearGuest(ctx, guestSessionID); err != nil {
		errs = append(errs, fmt.Errorf("clear guest cart: %w", err))
	}

	return errors.Join(errs...)
}

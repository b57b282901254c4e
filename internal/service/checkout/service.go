package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/orderclient"
	"storefront/internal/service/cart"
	"storefront/internal/service/pricing"
)

// Local precondition failures. These abort before any remote call and are
// always recoverable by correcting the form in place.
var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrEmailNotVerified   = errors.New("email address is not verified")
	ErrNameRequired       = errors.New("first and last name are required")
	ErrEmailInvalid       = errors.New("a valid email address is required")
	ErrPhoneInvalid       = errors.New("a valid phone number is required")
	ErrNoShippingAddress  = errors.New("a shipping address must be selected")
	ErrNoBillingAddress   = errors.New("a billing address must be selected")
	ErrBusinessIncomplete = errors.New("business billing requires registration id, legal name and registration number")
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{5,19}$`)
)

type cartStore interface {
	Get(ctx context.Context, b cart.Backing) (cart.View, error)
	Clear(ctx context.Context, b cart.Backing) error
	Reconstruct(ctx context.Context, b cart.Backing, lines []domain.LineItem) error
}

type settingsRepo interface {
	GetShipping(ctx context.Context) (*domain.ShippingSettings, error)
}

type orderCaller interface {
	Submit(ctx context.Context, draft domain.OrderDraft) (*orderclient.Result, error)
}

// Service validates and submits order drafts and interprets the result into
// a fixed outcome set. Nothing here retries automatically; every failure
// waits for the shopper to resubmit.
type Service struct {
	carts    cartStore
	settings settingsRepo
	orders   orderCaller
	logger   *log.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func New(carts cartStore, settings settingsRepo, orders orderCaller, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		carts:    carts,
		settings: settings,
		orders:   orders,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// SubmitInput carries the checkout form: contact fields plus the selected
// address snapshots (by id, resolved against the customer record).
type SubmitInput struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	ShippingAddressID string `json:"shippingAddressId"`
	BillingAddressID  string `json:"billingAddressId"`
}

// Submit runs the whole checkout attempt for a signed-in customer. Local
// validation failures come back as errors; everything after the remote call
// is folded into an Outcome. A second Submit for the same customer while one
// is in flight performs no remote call.
func (s *Service) Submit(ctx context.Context, customer *domain.Customer, accessToken string, in SubmitInput) (Outcome, error) {
	if !s.begin(customer.ID) {
		return inFlightOutcome(), nil
	}
	defer s.end(customer.ID)

	shipping, billing, err := s.validate(customer, &in)
	if err != nil {
		return Outcome{}, err
	}

	backing := cart.CustomerBacking(customer.ID)
	view, err := s.carts.Get(ctx, backing)
	if err != nil {
		return Outcome{}, err
	}
	if len(view.Lines) == 0 {
		return Outcome{}, ErrCartEmpty
	}

	cfg, err := s.settings.GetShipping(ctx)
	if err != nil {
		return Outcome{}, err
	}
	quote := pricing.Compute(view.SubtotalCents, *cfg)

	draft := newDraftBuilder().
		contact(in.FirstName, in.LastName, in.Email, in.Phone).
		shippingAddress(*shipping).
		billingAddress(*billing).
		lines(view.Lines).
		pricing(quote).
		submissionToken(customer.ID, accessToken, time.Now()).
		build()

	result, err := s.orders.Submit(ctx, draft)
	if err == nil {
		if clearErr := s.carts.Clear(ctx, backing); clearErr != nil {
			// The order exists; an uncleared cart is recoverable noise.
			s.logger.Printf("checkout: clear cart for customer %s after order %s: %v", customer.ID, result.OrderID, clearErr)
		}
		return successOutcome(result.OrderID), nil
	}

	return s.interpret(ctx, backing, view.Lines, err), nil
}

func (s *Service) validate(customer *domain.Customer, in *SubmitInput) (shipping, billing *domain.CustomerAddress, err error) {
	if !customer.EmailVerified {
		return nil, nil, ErrEmailNotVerified
	}

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.FirstName == "" || in.LastName == "" {
		return nil, nil, ErrNameRequired
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, nil, ErrEmailInvalid
	}
	if !phonePattern.MatchString(in.Phone) {
		return nil, nil, ErrPhoneInvalid
	}

	shipping = customer.AddressByID(strings.TrimSpace(in.ShippingAddressID))
	if shipping == nil {
		return nil, nil, ErrNoShippingAddress
	}
	billing = customer.AddressByID(strings.TrimSpace(in.BillingAddressID))
	if billing == nil {
		return nil, nil, ErrNoBillingAddress
	}
	if billing.Business {
		if billing.BusinessRegistrationID == "" || billing.BusinessLegalName == "" || billing.BusinessRegistrationNumber == "" {
			return nil, nil, ErrBusinessIncomplete
		}
	}
	return shipping, billing, nil
}

// interpret folds a remote failure into one outcome. The cart is only
// touched for the partial-failure case; every other failure leaves cart and
// form state unchanged so the shopper can retry as-is.
func (s *Service) interpret(ctx context.Context, backing cart.Backing, lines []domain.LineItem, err error) Outcome {
	var callErr *orderclient.CallError
	if !errors.As(err, &callErr) {
		s.logger.Printf("checkout: transient failure: %v", err)
		return transientOutcome()
	}

	switch callErr.Code {
	case orderclient.CodeUnauthenticated:
		return sessionExpiredOutcome()
	case orderclient.CodeNotFound, orderclient.CodeInvalidArgument:
		return addressInvalidOutcome()
	case orderclient.CodeFailedPrecondition:
		return businessIncompleteOutcome()
	case orderclient.CodeResourceExhausted:
		return rateLimitedOutcome()
	case orderclient.CodeAborted:
		if len(callErr.Rejected) > 0 {
			s.pruneRejected(ctx, backing, lines, callErr.Rejected)
			return invalidProductsOutcome(callErr.Rejected)
		}
		s.logger.Printf("checkout: aborted without rejected products: %v", callErr)
		return transientOutcome()
	default:
		s.logger.Printf("checkout: unmapped failure code=%s: %v", callErr.Code, callErr)
		return transientOutcome()
	}
}

// pruneRejected drops the refused products from the cart and keeps the valid
// remainder, so a resubmission after the shopper's acknowledgement can
// succeed.
func (s *Service) pruneRejected(ctx context.Context, backing cart.Backing, lines []domain.LineItem, rejected []domain.RejectedProduct) {
	refused := make(map[string]struct{}, len(rejected))
	for _, r := range rejected {
		refused[r.ProductID] = struct{}{}
	}
	kept := make([]domain.LineItem, 0, len(lines))
	for _, l := range lines {
		if _, ok := refused[l.ProductID]; !ok {
			kept = append(kept, l)
		}
	}
	if err := s.carts.Reconstruct(ctx, backing, kept); err != nil {
		s.logger.Printf("checkout: reconstruct cart after rejection: %v", err)
	}
}

func (s *Service) begin(customerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[customerID]; ok {
		return false
	}
	s.inFlight[customerID] = struct{}{}
	return true
}

func (s *Service) end(customerID string) {
	s.mu.Lock()
	delete(s.inFlight, customerID)
	s.mu.Unlock()
}

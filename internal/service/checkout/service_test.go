package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/orderclient"
	"storefront/internal/service/cart"
)

type stubCarts struct {
	view          cart.View
	getErr        error
	cleared       bool
	reconstructed []domain.LineItem
	reconCalled   bool
}

func (s *stubCarts) Get(_ context.Context, _ cart.Backing) (cart.View, error) {
	return s.view, s.getErr
}

func (s *stubCarts) Clear(_ context.Context, _ cart.Backing) error {
	s.cleared = true
	return nil
}

func (s *stubCarts) Reconstruct(_ context.Context, _ cart.Backing, lines []domain.LineItem) error {
	s.reconCalled = true
	s.reconstructed = lines
	return nil
}

type stubSettings struct {
	cfg *domain.ShippingSettings
	err error
}

func (s *stubSettings) GetShipping(_ context.Context) (*domain.ShippingSettings, error) {
	return s.cfg, s.err
}

type stubOrders struct {
	mu      sync.Mutex
	result  *orderclient.Result
	err     error
	calls   int
	drafts  []domain.OrderDraft
	entered chan struct{}
	release chan struct{}
}

func (s *stubOrders) Submit(_ context.Context, draft domain.OrderDraft) (*orderclient.Result, error) {
	s.mu.Lock()
	s.calls++
	s.drafts = append(s.drafts, draft)
	s.mu.Unlock()
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

func (s *stubOrders) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:            "cust-1",
		Email:         "jo@example.com",
		EmailVerified: true,
		Addresses: []domain.CustomerAddress{
			{ID: "addr-ship", Country: "DK", City: "Aarhus", StreetName: "Main 1"},
			{ID: "addr-bill", Country: "DK", City: "Aarhus", StreetName: "Main 1"},
			{
				ID:                         "addr-biz",
				Country:                    "DK",
				Business:                   true,
				BusinessRegistrationID:     "reg-1",
				BusinessLegalName:          "Jo ApS",
				BusinessRegistrationNumber: "DK-42",
			},
			{ID: "addr-biz-bad", Country: "DK", Business: true},
		},
	}
}

func validInput() SubmitInput {
	return SubmitInput{
		FirstName:         "Jo",
		LastName:          "Doe",
		Email:             "jo@example.com",
		Phone:             "+45 12 34 56 78",
		ShippingAddressID: "addr-ship",
		BillingAddressID:  "addr-bill",
	}
}

func testView() cart.View {
	return cart.View{
		Lines: []domain.LineItem{
			{ID: "l1", ProductID: "X", ProductName: "Widget", UnitPriceCents: 1000, Quantity: 2},
			{ID: "l2", ProductID: "Y", ProductName: "Gadget", UnitPriceCents: 500, Quantity: 1},
		},
		ItemCount:     3,
		SubtotalCents: 2500,
	}
}

func testShippingCfg() *domain.ShippingSettings {
	return &domain.ShippingSettings{DefaultPriceCents: 2500, FreeShippingEnabled: true, FreeThresholdCents: 50000}
}

func newTestService(carts *stubCarts, orders *stubOrders) *Service {
	return New(carts, &stubSettings{cfg: testShippingCfg()}, orders, nil)
}

func TestSubmitLocalValidation(t *testing.T) {
	carts := &stubCarts{view: testView()}
	orders := &stubOrders{}
	svc := newTestService(carts, orders)

	cases := []struct {
		name    string
		mutate  func(c *domain.Customer, in *SubmitInput)
		wantErr error
	}{
		{"email not verified", func(c *domain.Customer, _ *SubmitInput) { c.EmailVerified = false }, ErrEmailNotVerified},
		{"missing first name", func(_ *domain.Customer, in *SubmitInput) { in.FirstName = "  " }, ErrNameRequired},
		{"missing last name", func(_ *domain.Customer, in *SubmitInput) { in.LastName = "" }, ErrNameRequired},
		{"bad email", func(_ *domain.Customer, in *SubmitInput) { in.Email = "not-an-email" }, ErrEmailInvalid},
		{"bad phone", func(_ *domain.Customer, in *SubmitInput) { in.Phone = "abc" }, ErrPhoneInvalid},
		{"no shipping address", func(_ *domain.Customer, in *SubmitInput) { in.ShippingAddressID = "nope" }, ErrNoShippingAddress},
		{"no billing address", func(_ *domain.Customer, in *SubmitInput) { in.BillingAddressID = "" }, ErrNoBillingAddress},
		{"business details incomplete", func(_ *domain.Customer, in *SubmitInput) { in.BillingAddressID = "addr-biz-bad" }, ErrBusinessIncomplete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customer := testCustomer()
			in := validInput()
			tc.mutate(customer, &in)

			_, err := svc.Submit(context.Background(), customer, "tok", in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if orders.callCount() != 0 {
		t.Fatalf("local validation must not reach the order endpoint, got %d calls", orders.callCount())
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	carts := &stubCarts{view: cart.View{}}
	orders := &stubOrders{}
	svc := newTestService(carts, orders)

	_, err := svc.Submit(context.Background(), testCustomer(), "tok", validInput())
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected empty-cart error, got %v", err)
	}
	if orders.callCount() != 0 {
		t.Fatalf("empty cart must not reach the order endpoint")
	}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	carts := &stubCarts{view: testView()}
	orders := &stubOrders{result: &orderclient.Result{OrderID: "ord-9"}}
	svc := newTestService(carts, orders)

	out, err := svc.Submit(context.Background(), testCustomer(), "access-token", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != OutcomeSuccess || out.OrderID != "ord-9" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if !carts.cleared {
		t.Fatalf("cart not cleared after success")
	}

	draft := orders.drafts[0]
	if draft.SubtotalCents != 2500 || draft.ShippingCents != 2500 || draft.TotalCents != 5000 {
		t.Fatalf("unexpected pricing on draft: %+v", draft)
	}
	if draft.SubmissionToken == "" || !strings.Contains(draft.SubmissionToken, "cust-1") {
		t.Fatalf("unexpected submission token: %q", draft.SubmissionToken)
	}
}

func TestSubmissionTokenFreshPerAttempt(t *testing.T) {
	carts := &stubCarts{view: testView()}
	orders := &stubOrders{err: &orderclient.CallError{Code: orderclient.CodeUnavailable}}
	svc := newTestService(carts, orders)

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), testCustomer(), "tok", validInput()); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if len(orders.drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(orders.drafts))
	}
	if orders.drafts[0].SubmissionToken == orders.drafts[1].SubmissionToken {
		t.Fatalf("retry reused the submission token of the failed attempt")
	}
}

func TestSubmitBusinessBillingIncludesDetails(t *testing.T) {
	carts := &stubCarts{view: testView()}
	orders := &stubOrders{result: &orderclient.Result{OrderID: "ord-1"}}
	svc := newTestService(carts, orders)

	in := validInput()
	in.BillingAddressID = "addr-biz"
	if _, err := svc.Submit(context.Background(), testCustomer(), "tok", in); err != nil {
		t.Fatalf("submit: %v", err)
	}

	draft := orders.drafts[0]
	if !draft.BusinessOrder || draft.BusinessDetails == nil {
		t.Fatalf("expected business block on draft: %+v", draft)
	}
	if draft.BusinessDetails.LegalName != "Jo ApS" {
		t.Fatalf("unexpected business details: %+v", draft.BusinessDetails)
	}
}

func TestSubmitOutcomeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want OutcomeKind
	}{
		{"unauthenticated", &orderclient.CallError{Code: orderclient.CodeUnauthenticated}, OutcomeSessionExpired},
		{"address not found", &orderclient.CallError{Code: orderclient.CodeNotFound}, OutcomeAddressInvalid},
		{"invalid argument", &orderclient.CallError{Code: orderclient.CodeInvalidArgument}, OutcomeAddressInvalid},
		{"failed precondition", &orderclient.CallError{Code: orderclient.CodeFailedPrecondition}, OutcomeBusinessIncomplete},
		{"rate limited", &orderclient.CallError{Code: orderclient.CodeResourceExhausted}, OutcomeRateLimited},
		{"unavailable", &orderclient.CallError{Code: orderclient.CodeUnavailable}, OutcomeTransient},
		{"internal", &orderclient.CallError{Code: orderclient.CodeInternal}, OutcomeTransient},
		{"network failure", errors.New("connection refused"), OutcomeTransient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			carts := &stubCarts{view: testView()}
			svc := newTestService(carts, &stubOrders{err: tc.err})

			out, err := svc.Submit(context.Background(), testCustomer(), "tok", validInput())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Kind != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, out.Kind)
			}
			if out.Message == "" {
				t.Fatalf("outcome must carry a user-facing message")
			}
			if carts.cleared || carts.reconCalled {
				t.Fatalf("cart must stay untouched for %s", tc.name)
			}
		})
	}
}

func TestSubmitInvalidProductsPrunesCart(t *testing.T) {
	carts := &stubCarts{view: testView()}
	orders := &stubOrders{err: &orderclient.CallError{
		Code:     orderclient.CodeAborted,
		Rejected: []domain.RejectedProduct{{ProductID: "X", Reason: "out of stock"}},
	}}
	svc := newTestService(carts, orders)

	out, err := svc.Submit(context.Background(), testCustomer(), "tok", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != OutcomeInvalidProducts {
		t.Fatalf("expected invalid-products outcome, got %s", out.Kind)
	}
	if !strings.Contains(out.Message, "out of stock") {
		t.Fatalf("message must include the rejection reason: %q", out.Message)
	}
	if !carts.reconCalled {
		t.Fatalf("cart was not reconstructed")
	}
	if len(carts.reconstructed) != 1 || carts.reconstructed[0].ProductID != "Y" {
		t.Fatalf("expected only product Y kept, got %+v", carts.reconstructed)
	}
}

func TestSubmitInFlightGuard(t *testing.T) {
	carts := &stubCarts{view: testView()}
	orders := &stubOrders{
		result:  &orderclient.Result{OrderID: "ord-1"},
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc := newTestService(carts, orders)

	done := make(chan Outcome, 1)
	go func() {
		out, _ := svc.Submit(context.Background(), testCustomer(), "tok", validInput())
		done <- out
	}()

	<-orders.entered // first submission is inside the remote call

	out, err := svc.Submit(context.Background(), testCustomer(), "tok", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != OutcomeSubmissionInFlight {
		t.Fatalf("expected in-flight outcome, got %s", out.Kind)
	}

	close(orders.release)
	first := <-done
	if first.Kind != OutcomeSuccess {
		t.Fatalf("first submission should succeed, got %s", first.Kind)
	}
	if orders.callCount() != 1 {
		t.Fatalf("expected exactly one remote call, got %d", orders.callCount())
	}
}

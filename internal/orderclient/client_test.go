package orderclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain"
)

func newTestClient(url string) *Client {
	return New(url, 2*time.Second, nil)
}

func TestSubmitSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"orderId":"ord-123"}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Submit(context.Background(), domain.OrderDraft{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OrderID != "ord-123" {
		t.Fatalf("unexpected order id: %s", res.OrderID)
	}
}

func TestSubmitStructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"FAILED_PRECONDITION","message":"business details incomplete"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), domain.OrderDraft{})
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("expected CallError, got %v", err)
	}
	if callErr.Code != CodeFailedPrecondition {
		t.Fatalf("expected failed-precondition, got %s", callErr.Code)
	}
	if callErr.Message != "business details incomplete" {
		t.Fatalf("unexpected message: %s", callErr.Message)
	}
}

func TestSubmitBareStatusConvention(t *testing.T) {
	cases := []struct {
		status int
		want   Code
	}{
		{http.StatusUnauthorized, CodeUnauthenticated},
		{http.StatusTooManyRequests, CodeResourceExhausted},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusPreconditionFailed, CodeFailedPrecondition},
		{http.StatusServiceUnavailable, CodeUnavailable},
		{http.StatusTeapot, CodeUnknown},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := newTestClient(srv.URL).Submit(context.Background(), domain.OrderDraft{})
		srv.Close()

		var callErr *CallError
		if !errors.As(err, &callErr) {
			t.Fatalf("status %d: expected CallError, got %v", tc.status, err)
		}
		if callErr.Code != tc.want {
			t.Fatalf("status %d: expected %s, got %s", tc.status, tc.want, callErr.Code)
		}
	}
}

func TestSubmitInvalidProductsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"invalidProducts":[{"id":"X","reason":"out of stock"}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), domain.OrderDraft{})
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("expected CallError, got %v", err)
	}
	if callErr.Code != CodeAborted {
		t.Fatalf("expected aborted, got %s", callErr.Code)
	}
	if len(callErr.Rejected) != 1 || callErr.Rejected[0].ProductID != "X" || callErr.Rejected[0].Reason != "out of stock" {
		t.Fatalf("unexpected rejected list: %+v", callErr.Rejected)
	}
}

func TestSubmitMalformedBodyIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), domain.OrderDraft{})
	if err == nil {
		t.Fatalf("expected error for malformed body")
	}
	var callErr *CallError
	if errors.As(err, &callErr) {
		t.Fatalf("malformed body must not map to a CallError, got %+v", callErr)
	}
}

func TestSubmitTransportErrorIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).Submit(context.Background(), domain.OrderDraft{})
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var callErr *CallError
	if errors.As(err, &callErr) {
		t.Fatalf("transport failure must not map to a CallError")
	}
}

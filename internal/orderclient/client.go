// Package orderclient talks to the hosted order-validation-and-creation
// endpoint. The endpoint is an opaque collaborator: this client only submits
// a draft and normalizes the two response conventions it may answer with:
// a structured error body carrying a code, or a bare HTTP status.
package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"
)

// Code is the normalized error vocabulary of the order endpoint.
type Code string

const (
	CodeUnauthenticated    Code = "unauthenticated"
	CodeResourceExhausted  Code = "resource-exhausted"
	CodeAlreadyExists      Code = "already-exists"
	CodeInvalidArgument    Code = "invalid-argument"
	CodeNotFound           Code = "not-found"
	CodeAborted            Code = "aborted"
	CodeFailedPrecondition Code = "failed-precondition"
	CodeInternal           Code = "internal"
	CodePermissionDenied   Code = "permission-denied"
	CodeDeadlineExceeded   Code = "deadline-exceeded"
	CodeUnavailable        Code = "unavailable"
	CodeUnknown            Code = "unknown"
)

// Result is a successful order creation.
type Result struct {
	OrderID string
}

// CallError is a structured refusal from the endpoint. Rejected is populated
// for the partial-failure case where individual products were refused.
type CallError struct {
	Code     Code
	Message  string
	Rejected []domain.RejectedProduct
}

func (e *CallError) Error() string {
	return fmt.Sprintf("order endpoint: %s: %s", e.Code, e.Message)
}

// Client submits order drafts. Transport failures and timeouts are returned
// as plain errors, distinct from CallError, so callers can treat them as
// transient.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *log.Logger
}

func New(endpoint string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type responseEnvelope struct {
	Success         bool                     `json:"success"`
	OrderID         string                   `json:"orderId"`
	Message         string                   `json:"message"`
	InvalidProducts []domain.RejectedProduct `json:"invalidProducts"`
	Error           *struct {
		Code            string                   `json:"code"`
		Message         string                   `json:"message"`
		InvalidProducts []domain.RejectedProduct `json:"invalidProducts"`
	} `json:"error"`
}

// Submit posts the draft and returns either the created order or a
// normalized error.
func (c *Client) Submit(ctx context.Context, draft domain.OrderDraft) (*Result, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call order endpoint: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	var env responseEnvelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			c.logger.Printf("orderclient: malformed response status=%d body=%q", resp.StatusCode, truncate(raw, 256))
			return nil, fmt.Errorf("malformed order response (status %d)", resp.StatusCode)
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if env.Error != nil {
			return nil, callErrorFromEnvelope(env)
		}
		if !env.Success || env.OrderID == "" {
			return nil, fmt.Errorf("malformed order response (status %d)", resp.StatusCode)
		}
		return &Result{OrderID: env.OrderID}, nil
	}

	if env.Error != nil {
		return nil, callErrorFromEnvelope(env)
	}
	return nil, callErrorFromStatus(resp.StatusCode, env)
}

func callErrorFromEnvelope(env responseEnvelope) *CallError {
	rejected := env.Error.InvalidProducts
	if len(rejected) == 0 {
		rejected = env.InvalidProducts
	}
	return &CallError{
		Code:     codeFromString(env.Error.Code),
		Message:  env.Error.Message,
		Rejected: rejected,
	}
}

func callErrorFromStatus(status int, env responseEnvelope) *CallError {
	out := &CallError{Message: env.Message, Rejected: env.InvalidProducts}
	switch status {
	case http.StatusUnauthorized:
		out.Code = CodeUnauthenticated
	case http.StatusForbidden:
		out.Code = CodePermissionDenied
	case http.StatusNotFound:
		out.Code = CodeNotFound
	case http.StatusBadRequest:
		out.Code = CodeInvalidArgument
	case http.StatusConflict:
		out.Code = CodeAlreadyExists
	case http.StatusPreconditionFailed:
		out.Code = CodeFailedPrecondition
	case http.StatusUnprocessableEntity:
		out.Code = CodeAborted
	case http.StatusTooManyRequests:
		out.Code = CodeResourceExhausted
	case http.StatusServiceUnavailable:
		out.Code = CodeUnavailable
	case http.StatusGatewayTimeout:
		out.Code = CodeDeadlineExceeded
	case http.StatusInternalServerError:
		out.Code = CodeInternal
	default:
		out.Code = CodeUnknown
	}
	// A rejected-products list means partial failure whatever the status.
	if len(out.Rejected) > 0 {
		out.Code = CodeAborted
	}
	return out
}

func codeFromString(raw string) Code {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	switch Code(normalized) {
	case CodeUnauthenticated, CodeResourceExhausted, CodeAlreadyExists, CodeInvalidArgument,
		CodeNotFound, CodeAborted, CodeFailedPrecondition, CodeInternal, CodePermissionDenied,
		CodeDeadlineExceeded, CodeUnavailable:
		return Code(normalized)
	default:
		return CodeUnknown
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

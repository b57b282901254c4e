package checkout

import (
	"fmt"
	"strings"

	"storefront/internal/domain"
)

// OutcomeKind is the fixed set of user-facing checkout results. Every remote
// response maps to exactly one of these; no raw upstream error ever reaches
// the shopper.
type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "success"
	OutcomeSessionExpired     OutcomeKind = "session_expired"
	OutcomeAddressInvalid     OutcomeKind = "address_invalid"
	OutcomeBusinessIncomplete OutcomeKind = "business_details_incomplete"
	OutcomeInvalidProducts    OutcomeKind = "invalid_products"
	OutcomeRateLimited        OutcomeKind = "rate_limited"
	OutcomeSubmissionInFlight OutcomeKind = "submission_in_flight"
	OutcomeTransient          OutcomeKind = "transient"
)

// Outcome is the interpreted result of one submission attempt.
type Outcome struct {
	Kind     OutcomeKind              `json:"kind"`
	OrderID  string                   `json:"orderId,omitempty"`
	Message  string                   `json:"message"`
	Rejected []domain.RejectedProduct `json:"rejectedProducts,omitempty"`
}

func successOutcome(orderID string) Outcome {
	return Outcome{
		Kind:    OutcomeSuccess,
		OrderID: orderID,
		Message: "Your order has been placed.",
	}
}

func sessionExpiredOutcome() Outcome {
	return Outcome{
		Kind:    OutcomeSessionExpired,
		Message: "Your session has expired. Please sign in again.",
	}
}

func addressInvalidOutcome() Outcome {
	return Outcome{
		Kind:    OutcomeAddressInvalid,
		Message: "The selected address could not be used. Please review your shipping and billing addresses.",
	}
}

func businessIncompleteOutcome() Outcome {
	return Outcome{
		Kind:    OutcomeBusinessIncomplete,
		Message: "The business details on your billing address are incomplete.",
	}
}

func invalidProductsOutcome(rejected []domain.RejectedProduct) Outcome {
	reasons := make([]string, 0, len(rejected))
	for _, r := range rejected {
		reasons = append(reasons, fmt.Sprintf("%s: %s", r.ProductID, r.Reason))
	}
	return Outcome{
		Kind:     OutcomeInvalidProducts,
		Message:  "Some items are no longer available and were removed from your cart: " + strings.Join(reasons, "; "),
		Rejected: rejected,
	}
}

func rateLimitedOutcome() Outcome {
	return Outcome{
		Kind:    OutcomeRateLimited,
		Message: "Too many requests. Please wait a moment and try again.",
	}
}

func inFlightOutcome() Outcome {
	return Outcome{
		Kind:    OutcomeSubmissionInFlight,
		Message: "Your order is already being processed.",
	}
}

func transientOutcome() Outcome {
	return Outcome{
		Kind:    OutcomeTransient,
		Message: "Something went wrong while placing your order. Your cart is unchanged; please try again.",
	}
}

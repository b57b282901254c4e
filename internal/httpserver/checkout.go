package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/service/checkout"
)

func (h *handlers) submitCheckout(c *gin.Context) {
	cust := currentCustomer(c)
	if cust == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	token := c.GetString(ctxAccessTokenKey)

	var in checkout.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcome, err := h.deps.Checkout.Submit(c.Request.Context(), cust, token, in)
	if err != nil {
		if isCheckoutPrecondition(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Printf("checkout: submit for customer %s: %v", cust.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}

	c.JSON(outcomeStatus(outcome.Kind), outcome)
}

func isCheckoutPrecondition(err error) bool {
	for _, sentinel := range []error{
		checkout.ErrCartEmpty,
		checkout.ErrEmailNotVerified,
		checkout.ErrNameRequired,
		checkout.ErrEmailInvalid,
		checkout.ErrPhoneInvalid,
		checkout.ErrNoShippingAddress,
		checkout.ErrNoBillingAddress,
		checkout.ErrBusinessIncomplete,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// outcomeStatus maps the fixed outcome set onto HTTP statuses. The outcome
// body itself is always returned; the status only mirrors its kind.
func outcomeStatus(kind checkout.OutcomeKind) int {
	switch kind {
	case checkout.OutcomeSuccess:
		return http.StatusOK
	case checkout.OutcomeSessionExpired:
		return http.StatusUnauthorized
	case checkout.OutcomeAddressInvalid, checkout.OutcomeBusinessIncomplete, checkout.OutcomeInvalidProducts:
		return http.StatusUnprocessableEntity
	case checkout.OutcomeRateLimited:
		return http.StatusTooManyRequests
	case checkout.OutcomeSubmissionInFlight:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

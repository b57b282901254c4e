package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/service/pricing"
)

// draftBuilder assembles an order draft field by field. Optional blocks are
// included only when present, so the produced payload is deterministic
// instead of depending on ad hoc conditional merging at the call site.
type draftBuilder struct {
	draft domain.OrderDraft
}

func newDraftBuilder() *draftBuilder {
	return &draftBuilder{}
}

func (b *draftBuilder) contact(firstName, lastName, email, phone string) *draftBuilder {
	b.draft.FirstName = firstName
	b.draft.LastName = lastName
	b.draft.Email = email
	b.draft.Phone = phone
	return b
}

func (b *draftBuilder) shippingAddress(a domain.CustomerAddress) *draftBuilder {
	b.draft.ShippingAddress = a
	return b
}

func (b *draftBuilder) billingAddress(a domain.CustomerAddress) *draftBuilder {
	b.draft.BillingAddress = a
	if a.Business {
		b.draft.BusinessOrder = true
		b.draft.BusinessDetails = &domain.BusinessDetails{
			RegistrationID:     a.BusinessRegistrationID,
			LegalName:          a.BusinessLegalName,
			RegistrationNumber: a.BusinessRegistrationNumber,
		}
	}
	return b
}

func (b *draftBuilder) lines(lines []domain.LineItem) *draftBuilder {
	b.draft.Lines = lines
	return b
}

func (b *draftBuilder) pricing(q pricing.Quote) *draftBuilder {
	b.draft.SubtotalCents = q.SubtotalCents
	b.draft.ShippingCents = q.ShippingCents
	b.draft.TotalCents = q.TotalCents
	return b
}

// submissionToken stamps the draft with a value unique per attempt. Retries
// after a failed attempt generate a new token, so they never collide with
// the failed one; only a true duplicate of the same in-flight attempt would.
func (b *draftBuilder) submissionToken(customerID, accessToken string, now time.Time) *draftBuilder {
	b.draft.SubmissionToken = fmt.Sprintf("%s:%s:%s:%d", uuid.NewString(), customerID, tokenSuffix(accessToken), now.UnixNano())
	return b
}

func (b *draftBuilder) build() domain.OrderDraft {
	return b.draft
}

func tokenSuffix(token string) string {
	const n = 8
	if len(token) <= n {
		return token
	}
	return token[len(token)-n:]
}

package domain

// BusinessDetails accompanies a business order.
type BusinessDetails struct {
	RegistrationID     string `json:"registrationId"`
	LegalName          string `json:"legalName"`
	RegistrationNumber string `json:"registrationNumber"`
}

// OrderDraft is the full payload submitted to the remote order endpoint. The
// submission token is unique per attempt, not per logical order, so a retry
// after a failed attempt never collides with it.
type OrderDraft struct {
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	ShippingAddress CustomerAddress  `json:"shippingAddress"`
	BillingAddress  CustomerAddress  `json:"billingAddress"`
	BusinessOrder   bool             `json:"businessOrder,omitempty"`
	BusinessDetails *BusinessDetails `json:"businessDetails,omitempty"`
	Lines           []LineItem       `json:"lineItems"`
	SubtotalCents   int64            `json:"subtotalCents"`
	ShippingCents   int64            `json:"shippingCents"`
	TotalCents      int64            `json:"totalCents"`
	SubmissionToken string           `json:"submissionToken"`
}

// RejectedProduct is one cart line the order endpoint refused, with the
// user-facing reason.
type RejectedProduct struct {
	ProductID string `json:"id"`
	Reason    string `json:"reason"`
}

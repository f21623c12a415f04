package dto

// CheckoutRequest is the purchase intent posted by an authenticated user.
// Category-specific fields are optional and validated per category in the
// checkout service.
type CheckoutRequest struct {
	Type            string  `json:"type" binding:"required" validate:"required,item_category"`
	ItemID          string  `json:"item_id,omitempty"`
	Amount          float64 `json:"amount" binding:"required" validate:"required,gt=0"`
	PaymentMethodID string  `json:"payment_method_id" binding:"required"`
	PaymentProofURL string  `json:"payment_proof_url,omitempty" validate:"omitempty,url"`
	TransactionID   string  `json:"transaction_id,omitempty"`

	// membership / hosting
	BillingCycle string `json:"billing_cycle,omitempty" validate:"omitempty,oneof=monthly yearly"`

	// domain
	DomainName string `json:"domain_name,omitempty"`
	Years      int    `json:"years,omitempty" validate:"omitempty,min=1,max=10"`

	// service
	Requirements string `json:"requirements,omitempty"`

	// class
	Enroll bool `json:"enroll,omitempty"`
}

type CheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
}

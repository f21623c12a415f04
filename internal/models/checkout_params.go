package models

// Typed per-category checkout parameters. Checkout serializes exactly one
// of these into Order.Metadata; the fulfillment dispatcher unmarshals the
// struct matching the order's ItemType instead of probing an untyped map.

type MembershipCheckoutParams struct {
	BillingCycle    string `json:"billing_cycle,omitempty"` // "monthly" or "yearly"
	PaymentProofURL string `json:"payment_proof_url,omitempty"`
}

type DomainCheckoutParams struct {
	DomainName      string `json:"domain_name"`
	Years           int    `json:"years"`
	PaymentProofURL string `json:"payment_proof_url,omitempty"`
}

type HostingCheckoutParams struct {
	BillingCycle    string `json:"billing_cycle"`
	DomainName      string `json:"domain_name,omitempty"`
	PaymentProofURL string `json:"payment_proof_url,omitempty"`
}

type ServiceCheckoutParams struct {
	Requirements    string `json:"requirements,omitempty"`
	PaymentProofURL string `json:"payment_proof_url,omitempty"`
}

type ClassCheckoutParams struct {
	Enroll          bool   `json:"enroll,omitempty"`
	PaymentProofURL string `json:"payment_proof_url,omitempty"`
}

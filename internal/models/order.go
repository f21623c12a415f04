package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order is the purchase record for non-hosting products. Created as
// "pending" by checkout; mutated only by the gateway callback or the
// manual reviewer; never deleted.
type Order struct {
	BaseModel
	OwnerID   string       `gorm:"not null;index" json:"owner_id"`
	ItemType  ItemCategory `gorm:"type:varchar(20);not null" json:"item_type"`
	ItemID    *string      `gorm:"type:uuid" json:"item_id,omitempty"` // nil for ad-hoc domain purchases
	ItemTitle string       `gorm:"not null" json:"item_title"`         // snapshotted at purchase time
	ItemSlug  string       `json:"item_slug"`
	Amount    float64      `gorm:"not null" json:"amount"`
	Currency  string       `gorm:"default:'NPR'" json:"currency"`
	Status    OrderStatus  `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	PaymentMethod string  `json:"payment_method"`
	// PaymentID is the external transaction id and the idempotency key:
	// it identifies at most one order.
	PaymentID *string `gorm:"uniqueIndex" json:"payment_id,omitempty"`

	// Notes is the append-only audit trail (operator actions, gateway refs).
	Notes string `gorm:"type:text" json:"notes"`

	// Metadata carries the typed per-category checkout params (see
	// checkout_params.go), serialized as JSON.
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	// FulfilledAt is set when entitlements were applied. A paid order with
	// a nil FulfilledAt is the "paid but not fulfilled" condition operators
	// need to find and resume.
	FulfilledAt *time.Time `json:"fulfilled_at,omitempty"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

// HostingOrder is the parallel purchase record for hosting plans. It is
// keyed by TransactionID instead of PaymentID and uses the pending/active
// status vocabulary; the same idempotency rule applies.
type HostingOrder struct {
	BaseModel
	OwnerID      string             `gorm:"not null;index" json:"owner_id"`
	PlanID       string             `gorm:"not null" json:"plan_id"`
	PlanTitle    string             `gorm:"not null" json:"plan_title"`
	DomainName   string             `json:"domain_name"`
	BillingCycle string             `gorm:"default:'monthly'" json:"billing_cycle"`
	Amount       float64            `gorm:"not null" json:"amount"`
	Currency     string             `gorm:"default:'NPR'" json:"currency"`
	Status       HostingOrderStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	PaymentMethod string  `json:"payment_method"`
	TransactionID *string `gorm:"uniqueIndex" json:"transaction_id,omitempty"`

	Notes string `gorm:"type:text" json:"notes"`
}

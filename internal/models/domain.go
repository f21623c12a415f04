package models

// Domain is the placeholder record created alongside an ad-hoc domain
// order. Activation after payment is not wired to the fulfillment
// dispatcher yet; registrar provisioning flips it to active manually.
type Domain struct {
	BaseModel
	OwnerID string       `gorm:"not null;index" json:"owner_id"`
	Name    string       `gorm:"not null;uniqueIndex" json:"name"`
	Years   int          `gorm:"default:1" json:"years"`
	Status  DomainStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	OrderID string       `gorm:"type:uuid" json:"order_id"`
}

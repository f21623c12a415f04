package models

// PaymentGateway is the configured gateway-secret record. The callback
// verifier loads the secret for the active gateway from here; the config
// file only seeds the bootstrap row.
type PaymentGateway struct {
	BaseModel
	Code        string `gorm:"uniqueIndex;not null" json:"code"` // "esewa"
	SecretKey   string `gorm:"not null" json:"-"`
	ProductCode string `json:"product_code"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

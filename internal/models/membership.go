package models

// Membership is the read-only catalog entry for membership plans.
// DurationDays drives the expiry computed at activation; AdvancedCredits is
// the grant added to the buyer's balance.
type Membership struct {
	BaseModel
	Name            string  `gorm:"not null" json:"name"`
	Slug            string  `gorm:"uniqueIndex" json:"slug"`
	Price           float64 `gorm:"not null" json:"price"`
	Currency        string  `gorm:"default:'NPR'" json:"currency"`
	DurationDays    int     `gorm:"default:30" json:"duration_days"`
	AdvancedCredits int     `gorm:"default:0" json:"advanced_credits"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`
}

package models

import "time"

// User carries the entitlement fields mutated by fulfillment. Invariants:
// membership_status=none implies membership_id and membership_expires_at are
// nil; expired/canceled imply membership_expires_at <= now; advanced_credits
// never goes negative and always equals the sum of the user's credit
// transactions.
type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);default:'user'" json:"role"`

	MembershipID        *string          `gorm:"type:uuid" json:"membership_id,omitempty"`
	MembershipStatus    MembershipStatus `gorm:"type:varchar(20);default:'none'" json:"membership_status"`
	MembershipExpiresAt *time.Time       `json:"membership_expires_at,omitempty"`
	AdvancedCredits     int              `gorm:"default:0" json:"advanced_credits"`

	// Relations
	Membership *Membership `gorm:"foreignKey:MembershipID" json:"-"`
}

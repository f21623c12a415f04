package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreditTransaction is an immutable ledger entry. Amount is signed:
// positive for credits, negative for debits. The sum of a user's entries
// must equal User.AdvancedCredits at all times; both sides of that
// invariant are written in one transaction by the credit repository.
type CreditTransaction struct {
	ID          string                `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     string                `gorm:"not null;index" json:"owner_id"`
	Amount      int                   `gorm:"not null" json:"amount"`
	Type        CreditTransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Description string                `json:"description"`
	Metadata    datatypes.JSON        `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

func (t *CreditTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

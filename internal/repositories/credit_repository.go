package repositories

import (
	"encoding/json"
	"errors"

	"websewa_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credit balance")
	ErrInvalidCreditAmount = errors.New("credit amount must be positive")
)

// CreditRepository is the ledger: every balance mutation happens together
// with its transaction append in one database transaction, so the per-user
// sum of entries always equals the cached balance.
type CreditRepository interface {
	Credit(ownerID string, amount int, description string, metadata map[string]interface{}) error
	Debit(ownerID string, amount int, description string, metadata map[string]interface{}) error
	Balance(ownerID string) (int, error)
	History(ownerID string, limit, offset int) ([]models.CreditTransaction, int64, error)

	// SumForOwner recomputes the balance from the ledger. Reconciliation
	// and tests only; the hot path reads the cached column.
	SumForOwner(ownerID string) (int, error)
}

type CreditRepositoryImpl struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &CreditRepositoryImpl{db: db}
}

func (r *CreditRepositoryImpl) Credit(ownerID string, amount int, description string, metadata map[string]interface{}) error {
	if amount <= 0 {
		return ErrInvalidCreditAmount
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", ownerID).
			Update("advanced_credits", gorm.Expr("advanced_credits + ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return tx.Create(&models.CreditTransaction{
			OwnerID:     ownerID,
			Amount:      amount,
			Type:        models.CreditTransactionCredit,
			Description: description,
			Metadata:    marshalMetadata(metadata),
		}).Error
	})
}

func (r *CreditRepositoryImpl) Debit(ownerID string, amount int, description string, metadata map[string]interface{}) error {
	if amount <= 0 {
		return ErrInvalidCreditAmount
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		// Conditional decrement, not read-modify-write: a racing credit
		// or debit cannot drive the balance negative.
		result := tx.Model(&models.User{}).
			Where("id = ? AND advanced_credits >= ?", ownerID, amount).
			Update("advanced_credits", gorm.Expr("advanced_credits - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientCredits
		}

		return tx.Create(&models.CreditTransaction{
			OwnerID:     ownerID,
			Amount:      -amount,
			Type:        models.CreditTransactionDebit,
			Description: description,
			Metadata:    marshalMetadata(metadata),
		}).Error
	})
}

func (r *CreditRepositoryImpl) Balance(ownerID string) (int, error) {
	var user models.User
	if err := r.db.Select("advanced_credits").First(&user, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.AdvancedCredits, nil
}

func (r *CreditRepositoryImpl) History(ownerID string, limit, offset int) ([]models.CreditTransaction, int64, error) {
	query := r.db.Model(&models.CreditTransaction{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.CreditTransaction
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error
	return transactions, total, err
}

func (r *CreditRepositoryImpl) SumForOwner(ownerID string) (int, error) {
	var sum *int
	err := r.db.Model(&models.CreditTransaction{}).
		Where("owner_id = ?", ownerID).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func marshalMetadata(metadata map[string]interface{}) datatypes.JSON {
	if len(metadata) == 0 {
		return nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

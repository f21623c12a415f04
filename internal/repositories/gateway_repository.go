package repositories

import (
	"errors"

	"websewa_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
)

type GatewayRepository interface {
	FindActiveByCode(code string) (*models.PaymentGateway, error)
	Seed(gateway *models.PaymentGateway) error
}

type GatewayRepositoryImpl struct {
	db *gorm.DB
}

func NewGatewayRepository(db *gorm.DB) GatewayRepository {
	return &GatewayRepositoryImpl{db: db}
}

func (r *GatewayRepositoryImpl) FindActiveByCode(code string) (*models.PaymentGateway, error) {
	var gateway models.PaymentGateway
	if err := r.db.First(&gateway, "code = ? AND is_active = ?", code, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGatewayNotConfigured
		}
		return nil, err
	}
	if gateway.SecretKey == "" {
		return nil, ErrGatewayNotConfigured
	}
	return &gateway, nil
}

// Seed inserts the bootstrap gateway row if none exists for the code.
func (r *GatewayRepositoryImpl) Seed(gateway *models.PaymentGateway) error {
	var existing models.PaymentGateway
	err := r.db.First(&existing, "code = ?", gateway.Code).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(gateway).Error
}

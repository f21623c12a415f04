package repositories

import (
	"errors"

	"websewa_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDomainNotFound = errors.New("domain not found")
)

type DomainRepository interface {
	Create(domain *models.Domain) error
	FindByOrderID(orderID string) (*models.Domain, error)
	FindByOwner(ownerID string) ([]models.Domain, error)
}

type DomainRepositoryImpl struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &DomainRepositoryImpl{db: db}
}

func (r *DomainRepositoryImpl) Create(domain *models.Domain) error {
	return r.db.Create(domain).Error
}

func (r *DomainRepositoryImpl) FindByOrderID(orderID string) (*models.Domain, error) {
	var domain models.Domain
	if err := r.db.First(&domain, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDomainNotFound
		}
		return nil, err
	}
	return &domain, nil
}

func (r *DomainRepositoryImpl) FindByOwner(ownerID string) ([]models.Domain, error) {
	var domains []models.Domain
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&domains).Error
	return domains, err
}

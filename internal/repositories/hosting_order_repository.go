package repositories

import (
	"errors"

	"websewa_backend/internal/models"

	"gorm.io/gorm"
)

type HostingOrderRepository interface {
	Create(order *models.HostingOrder) error
	FindByID(id string) (*models.HostingOrder, error)
	FindByTransactionID(transactionID string) (*models.HostingOrder, error)
	FindByOwner(ownerID string, limit, offset int) ([]models.HostingOrder, error)

	// TransitionStatus mirrors the order repository: one conditional
	// UPDATE, zero rows means replay or concurrent settle.
	TransitionStatus(id string, from, to models.HostingOrderStatus, auditLine string) (int64, error)
}

type HostingOrderRepositoryImpl struct {
	db *gorm.DB
}

func NewHostingOrderRepository(db *gorm.DB) HostingOrderRepository {
	return &HostingOrderRepositoryImpl{db: db}
}

func (r *HostingOrderRepositoryImpl) Create(order *models.HostingOrder) error {
	return r.db.Create(order).Error
}

func (r *HostingOrderRepositoryImpl) FindByID(id string) (*models.HostingOrder, error) {
	var order models.HostingOrder
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostingOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *HostingOrderRepositoryImpl) FindByTransactionID(transactionID string) (*models.HostingOrder, error) {
	var order models.HostingOrder
	if err := r.db.First(&order, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostingOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *HostingOrderRepositoryImpl) FindByOwner(ownerID string, limit, offset int) ([]models.HostingOrder, error) {
	var orders []models.HostingOrder
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *HostingOrderRepositoryImpl) TransitionStatus(id string, from, to models.HostingOrderStatus, auditLine string) (int64, error) {
	result := r.db.Model(&models.HostingOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status": to,
			"notes":  gorm.Expr("notes || ?", auditLine+"\n"),
		})
	return result.RowsAffected, result.Error
}

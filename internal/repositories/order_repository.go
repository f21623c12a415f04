package repositories

import (
	"errors"
	"time"

	"websewa_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrHostingOrderNotFound = errors.New("hosting order not found")
)

type OrderRepository interface {
	Create(order *models.Order) error
	FindByID(id string) (*models.Order, error)
	FindByPaymentID(paymentID string) (*models.Order, error)
	FindByOwner(ownerID string, limit, offset int) ([]models.Order, error)
	FindAll(status models.OrderStatus, limit, offset int) ([]models.Order, int64, error)
	FindPaidUnfulfilled() ([]models.Order, error)

	// TransitionStatus atomically moves an order from one status to
	// another and appends an audit line, in a single conditional UPDATE.
	// Returns the number of rows changed: 0 means the order was not in
	// the expected source status (concurrent settle or replay).
	TransitionStatus(id string, from, to models.OrderStatus, auditLine string) (int64, error)

	SetFulfilled(id string, at time.Time) error
	AppendNote(id string, auditLine string) error
}

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepositoryImpl) FindByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindByPaymentID(paymentID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindByOwner(ownerID string, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepositoryImpl) FindAll(status models.OrderStatus, limit, offset int) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

// FindPaidUnfulfilled lists orders whose status write landed but whose
// entitlement grant did not. Operators resume these by hand.
func (r *OrderRepositoryImpl) FindPaidUnfulfilled() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("status = ? AND fulfilled_at IS NULL AND item_type = ?",
			models.OrderStatusPaid, models.ItemCategoryMembership).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepositoryImpl) TransitionStatus(id string, from, to models.OrderStatus, auditLine string) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status": to,
			"notes":  gorm.Expr("notes || ?", auditLine+"\n"),
		})
	return result.RowsAffected, result.Error
}

func (r *OrderRepositoryImpl) SetFulfilled(id string, at time.Time) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("fulfilled_at", at).Error
}

func (r *OrderRepositoryImpl) AppendNote(id string, auditLine string) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("notes", gorm.Expr("notes || ?", auditLine+"\n")).Error
}

package services

import (
	"context"

	"websewa_backend/internal/auth"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// OrderService covers manual settlement review and order queries. The
// pending->paid edge triggers fulfillment inside the same transaction as
// the status write; every other transition only moves the status.
type OrderService interface {
	UpdateStatus(ctx context.Context, principal auth.Principal, orderID string, newStatus models.OrderStatus) error
	GetByID(ctx context.Context, principal auth.Principal, orderID string) (*models.Order, error)
	ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]models.Order, error)
	List(ctx context.Context, status models.OrderStatus, page, pageSize int) ([]models.Order, int64, error)
	ListPaidUnfulfilled(ctx context.Context) ([]models.Order, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repositories.OrderRepository
	fulfillment FulfillmentService
}

func NewOrderService(db *gorm.DB, orderRepo repositories.OrderRepository, fulfillment FulfillmentService) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		fulfillment: fulfillment,
	}
}

func (s *orderService) UpdateStatus(ctx context.Context, principal auth.Principal, orderID string, newStatus models.OrderStatus) error {
	if !principal.IsAdmin() {
		return apperrors.NewForbiddenError("Only operators can update order status")
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return apperrors.NewNotFoundError("Order not found")
		}
		return apperrors.InternalError(err)
	}

	// Repeating the same status is an idempotent no-op, matching the
	// gateway replay behavior.
	if order.Status == newStatus {
		logger.CtxInfo(ctx, "order already in requested status",
			"order_id", order.ID, "status", newStatus)
		return nil
	}

	if !models.ValidOrderTransition(order.Status, newStatus) {
		return apperrors.ErrInvalidTransition(string(order.Status), string(newStatus))
	}

	auditLine := "status " + string(newStatus) + " set by operator " + principal.UserID

	if newStatus == models.OrderStatusPaid {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			txOrderRepo := repositories.NewOrderRepository(tx)
			rows, err := txOrderRepo.TransitionStatus(order.ID, models.OrderStatusPending, models.OrderStatusPaid, auditLine)
			if err != nil {
				return err
			}
			if rows == 0 {
				// Lost the race against the gateway callback; the order
				// is settled either way.
				logger.CtxInfo(ctx, "order settled concurrently during review", "order_id", order.ID)
				return nil
			}
			return s.fulfillment.Fulfill(ctx, tx, order)
		})
		if err != nil {
			logger.CtxWithError(ctx, "manual settlement failed", err, "order_id", order.ID)
			return apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "order manually settled", "order_id", order.ID, "operator_id", principal.UserID)
		return nil
	}

	// Cancel and refund move the status only. A refund of a paid order
	// does not claw back granted credits or membership; the reversal is a
	// deliberate manual process.
	rows, err := s.orderRepo.TransitionStatus(order.ID, order.Status, newStatus, auditLine)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if rows == 0 {
		return apperrors.NewConflictError("Order status changed concurrently, retry")
	}

	logger.CtxInfo(ctx, "order status updated",
		"order_id", order.ID, "from", order.Status, "to", newStatus, "operator_id", principal.UserID)
	return nil
}

func (s *orderService) GetByID(ctx context.Context, principal auth.Principal, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if order.OwnerID != principal.UserID && !principal.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Not your order")
	}
	return order, nil
}

func (s *orderService) ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]models.Order, error) {
	return s.orderRepo.FindByOwner(ownerID, pageSize, (page-1)*pageSize)
}

func (s *orderService) List(ctx context.Context, status models.OrderStatus, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.FindAll(status, pageSize, (page-1)*pageSize)
}

func (s *orderService) ListPaidUnfulfilled(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.FindPaidUnfulfilled()
}

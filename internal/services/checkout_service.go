package services

import (
	"context"
	"encoding/json"

	"websewa_backend/internal/auth"
	"websewa_backend/internal/dto"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckoutService accepts purchase intents and creates pending records.
// Catalog data is snapshotted onto the order at purchase time; every call
// creates exactly one record. Clients retrying blindly without a
// transaction id will create duplicate pending orders; those never settle
// and are cleaned up by operators.
type CheckoutService interface {
	Checkout(ctx context.Context, principal auth.Principal, req *dto.CheckoutRequest) (string, error)
}

type checkoutService struct {
	db          *gorm.DB
	catalogRepo repositories.CatalogRepository
}

func NewCheckoutService(db *gorm.DB, catalogRepo repositories.CatalogRepository) CheckoutService {
	return &checkoutService{
		db:          db,
		catalogRepo: catalogRepo,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, principal auth.Principal, req *dto.CheckoutRequest) (string, error) {
	if principal.UserID == "" {
		return "", apperrors.NewUnauthorizedError("Authentication required")
	}

	category := models.ItemCategory(req.Type)

	switch category {
	case models.ItemCategoryHosting:
		return s.checkoutHosting(ctx, principal, req)
	case models.ItemCategoryDomain:
		return s.checkoutDomain(ctx, principal, req)
	case models.ItemCategoryService, models.ItemCategoryBundle, models.ItemCategoryClass, models.ItemCategoryMembership:
		return s.checkoutCatalogItem(ctx, principal, category, req)
	default:
		return "", apperrors.ErrInvalidItemCategory
	}
}

func (s *checkoutService) checkoutCatalogItem(ctx context.Context, principal auth.Principal, category models.ItemCategory, req *dto.CheckoutRequest) (string, error) {
	if req.ItemID == "" {
		return "", apperrors.NewBadRequestError("item_id is required for " + string(category) + " purchases")
	}

	snapshot, err := s.catalogRepo.SnapshotItem(category, req.ItemID)
	if err != nil {
		if err == repositories.ErrItemNotFound {
			return "", apperrors.ErrItemNotFound
		}
		return "", apperrors.InternalError(err)
	}

	metadata, err := s.paramsFor(category, req)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	itemID := snapshot.ID
	order := &models.Order{
		OwnerID:       principal.UserID,
		ItemType:      category,
		ItemID:        &itemID,
		ItemTitle:     snapshot.Title,
		ItemSlug:      snapshot.Slug,
		Amount:        snapshot.Price,
		Currency:      snapshot.Currency,
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethodID,
		PaymentID:     optional(req.TransactionID),
		Notes:         "order created via checkout\n",
		Metadata:      metadata,
	}

	if err := s.db.Create(order).Error; err != nil {
		return "", apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "pending order created",
		"order_id", order.ID, "owner_id", principal.UserID, "item_type", category, "amount", order.Amount)
	return order.ID, nil
}

func (s *checkoutService) checkoutDomain(ctx context.Context, principal auth.Principal, req *dto.CheckoutRequest) (string, error) {
	if req.DomainName == "" {
		return "", apperrors.NewBadRequestError("domain_name is required for domain purchases")
	}
	years := req.Years
	if years <= 0 {
		years = 1
	}

	metadata, err := json.Marshal(models.DomainCheckoutParams{
		DomainName:      req.DomainName,
		Years:           years,
		PaymentProofURL: req.PaymentProofURL,
	})
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	// Ad-hoc purchase: the order plus a placeholder Domain record, both
	// pending. Activating the placeholder after payment is a registrar
	// step outside this flow.
	var orderID string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		order := &models.Order{
			OwnerID:       principal.UserID,
			ItemType:      models.ItemCategoryDomain,
			ItemTitle:     "Domain registration: " + req.DomainName,
			Amount:        req.Amount,
			Status:        models.OrderStatusPending,
			PaymentMethod: req.PaymentMethodID,
			PaymentID:     optional(req.TransactionID),
			Notes:         "order created via checkout\n",
			Metadata:      datatypes.JSON(metadata),
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		orderID = order.ID

		domainRepo := repositories.NewDomainRepository(tx)
		return domainRepo.Create(&models.Domain{
			OwnerID: principal.UserID,
			Name:    req.DomainName,
			Years:   years,
			Status:  models.DomainStatusPending,
			OrderID: order.ID,
		})
	})
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "pending domain order created",
		"order_id", orderID, "owner_id", principal.UserID, "domain", req.DomainName)
	return orderID, nil
}

func (s *checkoutService) checkoutHosting(ctx context.Context, principal auth.Principal, req *dto.CheckoutRequest) (string, error) {
	if req.ItemID == "" {
		return "", apperrors.NewBadRequestError("item_id is required for hosting purchases")
	}

	plan, err := s.catalogRepo.FindHostingPlanByID(req.ItemID)
	if err != nil {
		if err == repositories.ErrItemNotFound {
			return "", apperrors.ErrItemNotFound
		}
		return "", apperrors.InternalError(err)
	}

	cycle := req.BillingCycle
	if cycle == "" {
		cycle = "monthly"
	}
	amount := plan.MonthlyPrice
	if cycle == "yearly" {
		amount = plan.YearlyPrice
	}

	order := &models.HostingOrder{
		OwnerID:       principal.UserID,
		PlanID:        plan.ID,
		PlanTitle:     plan.Title,
		DomainName:    req.DomainName,
		BillingCycle:  cycle,
		Amount:        amount,
		Currency:      plan.Currency,
		Status:        models.HostingStatusPending,
		PaymentMethod: req.PaymentMethodID,
		TransactionID: optional(req.TransactionID),
		Notes:         "hosting order created via checkout\n",
	}

	if err := s.db.Create(order).Error; err != nil {
		return "", apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "pending hosting order created",
		"hosting_order_id", order.ID, "owner_id", principal.UserID, "plan_id", plan.ID, "cycle", cycle)
	return order.ID, nil
}

// paramsFor serializes the typed checkout params matching the category.
func (s *checkoutService) paramsFor(category models.ItemCategory, req *dto.CheckoutRequest) (datatypes.JSON, error) {
	var params interface{}
	switch category {
	case models.ItemCategoryMembership:
		params = models.MembershipCheckoutParams{
			BillingCycle:    req.BillingCycle,
			PaymentProofURL: req.PaymentProofURL,
		}
	case models.ItemCategoryService:
		params = models.ServiceCheckoutParams{
			Requirements:    req.Requirements,
			PaymentProofURL: req.PaymentProofURL,
		}
	case models.ItemCategoryClass:
		params = models.ClassCheckoutParams{
			Enroll:          req.Enroll,
			PaymentProofURL: req.PaymentProofURL,
		}
	default:
		params = models.ServiceCheckoutParams{PaymentProofURL: req.PaymentProofURL}
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package services

import (
	"context"
	"encoding/json"
	"time"

	"websewa_backend/internal/logger"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FulfillmentService converts a freshly paid order into durable account
// entitlements. Fulfill always runs inside the caller's settle transaction,
// on the pending->paid edge, so "paid" and "entitled" commit or roll back
// together.
type FulfillmentService interface {
	Fulfill(ctx context.Context, tx *gorm.DB, order *models.Order) error
}

type fulfillmentService struct{}

func NewFulfillmentService() FulfillmentService {
	return &fulfillmentService{}
}

func (s *fulfillmentService) Fulfill(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	switch order.ItemType {
	case models.ItemCategoryMembership:
		return s.fulfillMembership(ctx, tx, order)
	case models.ItemCategoryDomain:
		// Registrar provisioning of the placeholder Domain record is not
		// wired here yet; the record stays pending until it lands.
		logger.CtxInfo(ctx, "domain order paid, awaiting manual provisioning", "order_id", order.ID)
		return nil
	case models.ItemCategoryService, models.ItemCategoryClass, models.ItemCategoryBundle:
		// Delivered by the team, no automatic entitlement mutation.
		logger.CtxDebug(ctx, "no automatic fulfillment for item type", "order_id", order.ID, "item_type", order.ItemType)
		return nil
	default:
		logger.CtxWarn(ctx, "paid order with unknown item type", "order_id", order.ID, "item_type", order.ItemType)
		return nil
	}
}

func (s *fulfillmentService) fulfillMembership(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if order.ItemID == nil {
		logger.CtxError(ctx, "membership order without item id, skipping grant", "order_id", order.ID)
		return nil
	}

	catalogRepo := repositories.NewCatalogRepository(tx)
	membership, err := catalogRepo.FindMembershipByID(*order.ItemID)
	if err != nil {
		if err == repositories.ErrItemNotFound {
			// The grant is skipped but the status transition stands;
			// FulfilledAt stays nil so the order shows up as paid but
			// not fulfilled for operators.
			logger.CtxError(ctx, "membership not found, grant skipped",
				"order_id", order.ID, "membership_id", *order.ItemID)
			return nil
		}
		return err
	}

	days := membership.DurationDays
	if days <= 0 {
		days = 30
	}
	if params := s.membershipParams(order.Metadata); params != nil && params.BillingCycle == "yearly" {
		days = 365
	}

	now := time.Now()
	expiresAt := now.AddDate(0, 0, days)

	// Activation, expiry and the additive credit grant land in one UPDATE;
	// a concurrent reader never sees an active membership without its
	// credits.
	userRepo := repositories.NewUserRepository(tx)
	if err := userRepo.ApplyMembershipGrant(order.OwnerID, membership.ID, expiresAt, membership.AdvancedCredits); err != nil {
		return err
	}

	if membership.AdvancedCredits > 0 {
		// Matching ledger entry for the balance increment above; same
		// transaction keeps sum(entries) == balance.
		meta, _ := json.Marshal(map[string]interface{}{
			"order_id":      order.ID,
			"membership_id": membership.ID,
		})
		if err := tx.Create(&models.CreditTransaction{
			OwnerID:     order.OwnerID,
			Amount:      membership.AdvancedCredits,
			Type:        models.CreditTransactionCredit,
			Description: "Membership activation: " + membership.Name,
			Metadata:    datatypes.JSON(meta),
		}).Error; err != nil {
			return err
		}
	}

	orderRepo := repositories.NewOrderRepository(tx)
	if err := orderRepo.SetFulfilled(order.ID, now); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "membership fulfilled",
		"order_id", order.ID,
		"owner_id", order.OwnerID,
		"membership_id", membership.ID,
		"expires_at", expiresAt,
		"credits_granted", membership.AdvancedCredits,
	)
	return nil
}

func (s *fulfillmentService) membershipParams(metadata datatypes.JSON) *models.MembershipCheckoutParams {
	if len(metadata) == 0 {
		return nil
	}
	var params models.MembershipCheckoutParams
	if err := json.Unmarshal(metadata, &params); err != nil {
		return nil
	}
	return &params
}

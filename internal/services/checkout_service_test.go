package services

import (
	"context"
	"encoding/json"
	"testing"

	"websewa_backend/internal/auth"
	"websewa_backend/internal/dto"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/internal/testutil"
	"websewa_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCheckoutService(db *gorm.DB) CheckoutService {
	return NewCheckoutService(db, repositories.NewCatalogRepository(db))
}

func TestCheckout_MembershipSnapshotsCatalogPrice(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCheckoutService(db)
	ctx := context.Background()

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 2500, 30, 50)

	orderID, err := svc.Checkout(ctx, auth.Principal{UserID: buyer.ID, Role: "user"}, &dto.CheckoutRequest{
		Type:            "membership",
		ItemID:          membership.ID,
		Amount:          1, // client-sent price is ignored
		PaymentMethodID: "esewa",
		TransactionID:   "txn-m-1",
		BillingCycle:    "yearly",
	})
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.ItemCategoryMembership, order.ItemType)
	assert.Equal(t, 2500.0, order.Amount)
	assert.Equal(t, "pro", order.ItemTitle)
	require.NotNil(t, order.ItemID)
	assert.Equal(t, membership.ID, *order.ItemID)
	require.NotNil(t, order.PaymentID)
	assert.Equal(t, "txn-m-1", *order.PaymentID)

	var params models.MembershipCheckoutParams
	require.NoError(t, json.Unmarshal(order.Metadata, &params))
	assert.Equal(t, "yearly", params.BillingCycle)
}

func TestCheckout_UnknownItemRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCheckoutService(db)

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)

	_, err := svc.Checkout(context.Background(), auth.Principal{UserID: buyer.ID}, &dto.CheckoutRequest{
		Type:            "membership",
		ItemID:          "3f0e7c9a-0000-0000-0000-000000000002",
		Amount:          100,
		PaymentMethodID: "esewa",
	})
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCheckout_MissingItemIDRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCheckoutService(db)

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)

	_, err := svc.Checkout(context.Background(), auth.Principal{UserID: buyer.ID}, &dto.CheckoutRequest{
		Type:            "service",
		Amount:          100,
		PaymentMethodID: "esewa",
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestCheckout_DomainCreatesPlaceholder(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCheckoutService(db)
	ctx := context.Background()

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)

	orderID, err := svc.Checkout(ctx, auth.Principal{UserID: buyer.ID}, &dto.CheckoutRequest{
		Type:            "domain",
		Amount:          1500,
		PaymentMethodID: "esewa",
		DomainName:      "example.com.np",
		Years:           2,
	})
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, models.ItemCategoryDomain, order.ItemType)
	assert.Nil(t, order.ItemID) // ad-hoc purchase, no catalog reference
	assert.Equal(t, 1500.0, order.Amount)

	var domain models.Domain
	require.NoError(t, db.First(&domain, "order_id = ?", orderID).Error)
	assert.Equal(t, "example.com.np", domain.Name)
	assert.Equal(t, 2, domain.Years)
	assert.Equal(t, models.DomainStatusPending, domain.Status)
	assert.Equal(t, buyer.ID, domain.OwnerID)
}

func TestCheckout_DomainRequiresName(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCheckoutService(db)

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)

	_, err := svc.Checkout(context.Background(), auth.Principal{UserID: buyer.ID}, &dto.CheckoutRequest{
		Type:            "domain",
		Amount:          1500,
		PaymentMethodID: "esewa",
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestCheckout_HostingPricedByBillingCycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCheckoutService(db)
	ctx := context.Background()

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	plan := &models.HostingPlan{
		Title:        "Starter",
		Slug:         "starter",
		MonthlyPrice: 500,
		YearlyPrice:  5000,
		Currency:     "NPR",
		IsActive:     true,
	}
	require.NoError(t, db.Create(plan).Error)

	monthlyID, err := svc.Checkout(ctx, auth.Principal{UserID: buyer.ID}, &dto.CheckoutRequest{
		Type:            "hosting",
		ItemID:          plan.ID,
		Amount:          1,
		PaymentMethodID: "esewa",
		DomainName:      "example.com.np",
	})
	require.NoError(t, err)

	yearlyID, err := svc.Checkout(ctx, auth.Principal{UserID: buyer.ID}, &dto.CheckoutRequest{
		Type:            "hosting",
		ItemID:          plan.ID,
		Amount:          1,
		PaymentMethodID: "esewa",
		BillingCycle:    "yearly",
	})
	require.NoError(t, err)

	var monthly, yearly models.HostingOrder
	require.NoError(t, db.First(&monthly, "id = ?", monthlyID).Error)
	require.NoError(t, db.First(&yearly, "id = ?", yearlyID).Error)

	assert.Equal(t, "monthly", monthly.BillingCycle)
	assert.Equal(t, 500.0, monthly.Amount)
	assert.Equal(t, "example.com.np", monthly.DomainName)
	assert.Equal(t, "yearly", yearly.BillingCycle)
	assert.Equal(t, 5000.0, yearly.Amount)
	assert.Equal(t, models.HostingStatusPending, monthly.Status)
}

func TestCheckout_UnknownCategoryRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCheckoutService(db)

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)

	_, err := svc.Checkout(context.Background(), auth.Principal{UserID: buyer.ID}, &dto.CheckoutRequest{
		Type:            "spaceship",
		Amount:          100,
		PaymentMethodID: "esewa",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidItemCategory)
}

func TestCheckout_RequiresPrincipal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCheckoutService(db)

	_, err := svc.Checkout(context.Background(), auth.Principal{}, &dto.CheckoutRequest{
		Type:            "domain",
		Amount:          100,
		PaymentMethodID: "esewa",
		DomainName:      "example.com.np",
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 401, appErr.HTTPCode)
}

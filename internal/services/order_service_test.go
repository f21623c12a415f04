package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"websewa_backend/internal/auth"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/internal/testutil"
	"websewa_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(db, repositories.NewOrderRepository(db), NewFulfillmentService())
}

func adminPrincipal(id string) auth.Principal {
	return auth.Principal{UserID: id, Role: "admin"}
}

func userPrincipal(id string) auth.Principal {
	return auth.Principal{UserID: id, Role: "user"}
}

func createPendingMembershipOrder(t *testing.T, db *gorm.DB, ownerID, membershipID, billingCycle string) *models.Order {
	t.Helper()

	meta, err := json.Marshal(models.MembershipCheckoutParams{BillingCycle: billingCycle})
	require.NoError(t, err)

	order := &models.Order{
		OwnerID:   ownerID,
		ItemType:  models.ItemCategoryMembership,
		ItemID:    &membershipID,
		ItemTitle: "Pro",
		Amount:    1000,
		Status:    models.OrderStatusPending,
		Notes:     "order created via checkout\n",
		Metadata:  meta,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestUpdateStatus_ManualSettlementFulfills(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "admin@test.com", models.UserRoleAdmin, 0)
	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 10)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 50)
	order := createPendingMembershipOrder(t, db, buyer.ID, membership.ID, "monthly")

	require.NoError(t, svc.UpdateStatus(ctx, adminPrincipal(admin.ID), order.ID, models.OrderStatusPaid))

	var settled models.Order
	require.NoError(t, db.First(&settled, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, settled.Status)
	require.NotNil(t, settled.FulfilledAt)
	assert.Contains(t, settled.Notes, "set by operator "+admin.ID)

	var entitled models.User
	require.NoError(t, db.First(&entitled, "id = ?", buyer.ID).Error)
	assert.Equal(t, models.MembershipStatusActive, entitled.MembershipStatus)
	assert.Equal(t, 60, entitled.AdvancedCredits)
	require.NotNil(t, entitled.MembershipExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *entitled.MembershipExpiresAt, time.Minute)
}

func TestUpdateStatus_YearlyBillingCycleExtendsExpiry(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "admin@test.com", models.UserRoleAdmin, 0)
	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 10000, 30, 50)
	order := createPendingMembershipOrder(t, db, buyer.ID, membership.ID, "yearly")

	require.NoError(t, svc.UpdateStatus(ctx, adminPrincipal(admin.ID), order.ID, models.OrderStatusPaid))

	var entitled models.User
	require.NoError(t, db.First(&entitled, "id = ?", buyer.ID).Error)
	require.NotNil(t, entitled.MembershipExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 365), *entitled.MembershipExpiresAt, time.Minute)
}

func TestUpdateStatus_NonAdminForbidden(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 0)
	order := createPendingMembershipOrder(t, db, buyer.ID, membership.ID, "monthly")

	err := svc.UpdateStatus(context.Background(), userPrincipal(buyer.ID), order.ID, models.OrderStatusPaid)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 403, appErr.HTTPCode)

	var untouched models.Order
	require.NoError(t, db.First(&untouched, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, untouched.Status)
}

func TestUpdateStatus_RepeatIsNoOp(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "admin@test.com", models.UserRoleAdmin, 0)
	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 50)
	order := createPendingMembershipOrder(t, db, buyer.ID, membership.ID, "monthly")

	require.NoError(t, svc.UpdateStatus(ctx, adminPrincipal(admin.ID), order.ID, models.OrderStatusPaid))
	// Marking paid again succeeds without granting twice.
	require.NoError(t, svc.UpdateStatus(ctx, adminPrincipal(admin.ID), order.ID, models.OrderStatusPaid))

	var entitled models.User
	require.NoError(t, db.First(&entitled, "id = ?", buyer.ID).Error)
	assert.Equal(t, 50, entitled.AdvancedCredits)
}

func TestUpdateStatus_TerminalStatesReject(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "admin@test.com", models.UserRoleAdmin, 0)
	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 0)

	cases := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{"cancelled to paid", models.OrderStatusCancelled, models.OrderStatusPaid},
		{"refunded to paid", models.OrderStatusRefunded, models.OrderStatusPaid},
		{"paid to cancelled", models.OrderStatusPaid, models.OrderStatusCancelled},
		{"paid to pending", models.OrderStatusPaid, models.OrderStatusPending},
		{"cancelled to refunded", models.OrderStatusCancelled, models.OrderStatusRefunded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := createPendingMembershipOrder(t, db, buyer.ID, membership.ID, "monthly")
			require.NoError(t, db.Model(order).Update("status", tc.from).Error)

			err := svc.UpdateStatus(ctx, adminPrincipal(admin.ID), order.ID, tc.to)

			var appErr *apperrors.AppError
			require.True(t, apperrors.As(err, &appErr))
			assert.Equal(t, 409, appErr.HTTPCode)

			var after models.Order
			require.NoError(t, db.First(&after, "id = ?", order.ID).Error)
			assert.Equal(t, tc.from, after.Status)
		})
	}
}

func TestUpdateStatus_RefundDoesNotClawBackEntitlements(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "admin@test.com", models.UserRoleAdmin, 0)
	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 50)
	order := createPendingMembershipOrder(t, db, buyer.ID, membership.ID, "monthly")

	require.NoError(t, svc.UpdateStatus(ctx, adminPrincipal(admin.ID), order.ID, models.OrderStatusPaid))
	require.NoError(t, svc.UpdateStatus(ctx, adminPrincipal(admin.ID), order.ID, models.OrderStatusRefunded))

	var refunded models.Order
	require.NoError(t, db.First(&refunded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusRefunded, refunded.Status)

	// Reversal is a separate manual process; the grant stays.
	var entitled models.User
	require.NoError(t, db.First(&entitled, "id = ?", buyer.ID).Error)
	assert.Equal(t, models.MembershipStatusActive, entitled.MembershipStatus)
	assert.Equal(t, 50, entitled.AdvancedCredits)
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)

	admin := testutil.CreateUser(t, db, "admin@test.com", models.UserRoleAdmin, 0)

	err := svc.UpdateStatus(context.Background(), adminPrincipal(admin.ID),
		"3f0e7c9a-0000-0000-0000-000000000009", models.OrderStatusPaid)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestGetByID_OwnershipEnforced(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@test.com", models.UserRoleUser, 0)
	other := testutil.CreateUser(t, db, "other@test.com", models.UserRoleUser, 0)
	admin := testutil.CreateUser(t, db, "admin@test.com", models.UserRoleAdmin, 0)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 0)
	order := createPendingMembershipOrder(t, db, owner.ID, membership.ID, "monthly")

	got, err := svc.GetByID(ctx, userPrincipal(owner.ID), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetByID(ctx, userPrincipal(other.ID), order.ID)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 403, appErr.HTTPCode)

	_, err = svc.GetByID(ctx, adminPrincipal(admin.ID), order.ID)
	assert.NoError(t, err)
}

func TestListByOwner_ScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@test.com", models.UserRoleUser, 0)
	other := testutil.CreateUser(t, db, "other@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 0)
	createPendingMembershipOrder(t, db, owner.ID, membership.ID, "monthly")
	createPendingMembershipOrder(t, db, owner.ID, membership.ID, "monthly")
	createPendingMembershipOrder(t, db, other.ID, membership.ID, "monthly")

	orders, err := svc.ListByOwner(ctx, owner.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, owner.ID, o.OwnerID)
	}
}

func TestList_FiltersByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	buyer := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 0)
	createPendingMembershipOrder(t, db, buyer.ID, membership.ID, "monthly")
	paid := createPendingMembershipOrder(t, db, buyer.ID, membership.ID, "monthly")
	require.NoError(t, db.Model(paid).Update("status", models.OrderStatusPaid).Error)

	orders, total, err := svc.List(ctx, models.OrderStatusPending, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)

	_, total, err = svc.List(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

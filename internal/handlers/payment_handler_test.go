package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"websewa_backend/internal/dto"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/internal/services"
	"websewa_backend/internal/services/payment"
	"websewa_backend/internal/testutil"
	"websewa_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const callbackSecret = "8gBm/:&EnhH.1/q"

func newCallbackRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	require.NoError(t, repositories.NewGatewayRepository(db).Seed(&models.PaymentGateway{
		Code:      payment.GatewayCode,
		SecretKey: callbackSecret,
		IsActive:  true,
	}))

	paymentService := services.NewPaymentService(
		db,
		payment.NewEsewaService(),
		repositories.NewGatewayRepository(db),
		services.NewFulfillmentService(),
	)

	router := gin.New()
	api := router.Group("/api/v1")
	NewPaymentHandler(validator.New(), paymentService).RegisterRoutes(api)
	return router, db
}

func signedCallbackData(t *testing.T, transactionUUID string, tamper bool) string {
	t.Helper()

	esewa := payment.NewEsewaService()
	payload := &dto.EsewaPaymentData{
		TransactionCode:  "000XYZ",
		Status:           payment.StatusComplete,
		TotalAmount:      "1000",
		TransactionUUID:  transactionUUID,
		ProductCode:      "EPAYTEST",
		SignedFieldNames: "total_amount,transaction_uuid,product_code",
	}
	payload.Signature = esewa.GenerateSignature(esewa.SignedMessage(payload), callbackSecret)
	if tamper {
		payload.TotalAmount = "1"
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestEsewaCallbackEndpoint(t *testing.T) {
	router, db := newCallbackRouter(t)

	user := testutil.CreateUser(t, db, "buyer@test.com", models.UserRoleUser, 0)
	membership := testutil.CreateMembership(t, db, "pro", 1000, 30, 50)
	txn := "txn-http-1"
	order := &models.Order{
		OwnerID:   user.ID,
		ItemType:  models.ItemCategoryMembership,
		ItemID:    &membership.ID,
		ItemTitle: membership.Name,
		Amount:    membership.Price,
		Status:    models.OrderStatusPending,
		PaymentID: &txn,
		Notes:     "order created via checkout\n",
	}
	require.NoError(t, db.Create(order).Error)

	t.Run("form POST settles the order", func(t *testing.T) {
		form := url.Values{"data": {signedCallbackData(t, txn, false)}}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/esewa/callback",
			strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var settled models.Order
		require.NoError(t, db.First(&settled, "id = ?", order.ID).Error)
		assert.Equal(t, models.OrderStatusPaid, settled.Status)
	})

	t.Run("redirect GET replay returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/payments/esewa/callback?data="+url.QueryEscape(signedCallbackData(t, txn, false)), nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("tampered payload rejected", func(t *testing.T) {
		form := url.Values{"data": {signedCallbackData(t, txn, true)}}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/esewa/callback",
			strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "signature")
	})

	t.Run("missing data rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/esewa/callback", nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

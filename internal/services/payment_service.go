package services

import (
	"context"

	"websewa_backend/internal/dto"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/internal/services/payment"
	"websewa_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PaymentService settles orders from signed gateway callbacks. Side effects
// apply at most once per transaction id: replays succeed without mutation,
// and the pending->paid transition is one conditional UPDATE, so two
// concurrently delivered identical callbacks cannot both fulfill.
type PaymentService interface {
	ProcessEsewaCallback(ctx context.Context, req *dto.EsewaCallbackRequest) error
}

type paymentService struct {
	db          *gorm.DB
	esewa       *payment.EsewaService
	gatewayRepo repositories.GatewayRepository
	fulfillment FulfillmentService
}

func NewPaymentService(
	db *gorm.DB,
	esewa *payment.EsewaService,
	gatewayRepo repositories.GatewayRepository,
	fulfillment FulfillmentService,
) PaymentService {
	return &paymentService{
		db:          db,
		esewa:       esewa,
		gatewayRepo: gatewayRepo,
		fulfillment: fulfillment,
	}
}

func (s *paymentService) ProcessEsewaCallback(ctx context.Context, req *dto.EsewaCallbackRequest) error {
	if req == nil || req.Data == "" {
		return apperrors.ErrMissingCallbackData
	}

	payload, err := s.esewa.DecodeCallback(req.Data)
	if err != nil {
		logger.CtxWarn(ctx, "undecodable gateway callback", "error", err.Error())
		return apperrors.NewBadRequestError("Malformed callback data")
	}

	if payload.Status != payment.StatusComplete {
		logger.CtxWarn(ctx, "gateway callback with incomplete payment",
			"status", payload.Status, "transaction_uuid", payload.TransactionUUID)
		return apperrors.ErrPaymentNotComplete
	}

	gateway, err := s.gatewayRepo.FindActiveByCode(payment.GatewayCode)
	if err != nil {
		if err == repositories.ErrGatewayNotConfigured {
			logger.CtxError(ctx, "gateway secret missing", "gateway", payment.GatewayCode)
			return apperrors.ErrGatewayConfig
		}
		return apperrors.InternalError(err)
	}

	// Fail closed: an unverified payment is never accepted, whatever the
	// payload claims.
	if !s.esewa.VerifySignature(payload, gateway.SecretKey) {
		logger.CtxWarn(ctx, "gateway callback signature mismatch",
			"transaction_uuid", payload.TransactionUUID)
		return apperrors.ErrInvalidSignature
	}

	// Orders first (paymentId), then hosting orders (transactionId).
	orderRepo := repositories.NewOrderRepository(s.db)
	order, err := orderRepo.FindByPaymentID(payload.TransactionUUID)
	if err == nil {
		return s.settleOrder(ctx, order, payload)
	}
	if err != repositories.ErrOrderNotFound {
		return apperrors.InternalError(err)
	}

	hostingRepo := repositories.NewHostingOrderRepository(s.db)
	hostingOrder, err := hostingRepo.FindByTransactionID(payload.TransactionUUID)
	if err == nil {
		return s.settleHostingOrder(ctx, hostingOrder, payload)
	}
	if err != repositories.ErrHostingOrderNotFound {
		return apperrors.InternalError(err)
	}

	logger.CtxWarn(ctx, "gateway callback for unknown transaction",
		"transaction_uuid", payload.TransactionUUID)
	return apperrors.ErrOrderNotFound
}

func (s *paymentService) settleOrder(ctx context.Context, order *models.Order, payload *dto.EsewaPaymentData) error {
	// Replays of an already settled transaction are expected no-ops.
	if order.Status == models.OrderStatusPaid {
		logger.CtxInfo(ctx, "duplicate gateway callback ignored",
			"order_id", order.ID, "transaction_uuid", payload.TransactionUUID)
		return nil
	}
	if order.Status != models.OrderStatusPending {
		// Settling a cancelled/refunded order is an operator problem, not
		// a silent success.
		return apperrors.ErrInvalidTransition(string(order.Status), string(models.OrderStatusPaid))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepository(tx)

		auditLine := "paid via esewa, ref " + payload.TransactionCode
		rows, err := orderRepo.TransitionStatus(order.ID, models.OrderStatusPending, models.OrderStatusPaid, auditLine)
		if err != nil {
			return err
		}
		if rows == 0 {
			// A concurrent delivery won the conditional update; nothing
			// left to do here.
			logger.CtxInfo(ctx, "order already settled concurrently", "order_id", order.ID)
			return nil
		}

		return s.fulfillment.Fulfill(ctx, tx, order)
	})
	if err != nil {
		logger.CtxWithError(ctx, "order settlement failed", err, "order_id", order.ID)
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "order settled via gateway",
		"order_id", order.ID, "transaction_uuid", payload.TransactionUUID)
	return nil
}

func (s *paymentService) settleHostingOrder(ctx context.Context, order *models.HostingOrder, payload *dto.EsewaPaymentData) error {
	if order.Status == models.HostingStatusActive {
		logger.CtxInfo(ctx, "duplicate gateway callback ignored",
			"hosting_order_id", order.ID, "transaction_uuid", payload.TransactionUUID)
		return nil
	}
	if order.Status != models.HostingStatusPending {
		return apperrors.ErrInvalidTransition(string(order.Status), string(models.HostingStatusActive))
	}

	hostingRepo := repositories.NewHostingOrderRepository(s.db)
	auditLine := "activated via esewa, ref " + payload.TransactionCode
	rows, err := hostingRepo.TransitionStatus(order.ID, models.HostingStatusPending, models.HostingStatusActive, auditLine)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if rows == 0 {
		logger.CtxInfo(ctx, "hosting order already settled concurrently", "hosting_order_id", order.ID)
		return nil
	}

	logger.CtxInfo(ctx, "hosting order activated via gateway",
		"hosting_order_id", order.ID, "transaction_uuid", payload.TransactionUUID)
	return nil
}

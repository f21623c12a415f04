package handlers

import (
	"net/http"

	"websewa_backend/internal/dto"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/services"
	"websewa_backend/internal/validator"
	"websewa_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(v *validator.Validator, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    NewBaseHandler(v),
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Gateway callbacks are unauthenticated by nature.
	payments := r.Group("/payments")
	{
		payments.GET("/esewa/callback", h.EsewaCallback)
		payments.POST("/esewa/callback", h.EsewaCallback)
	}
}

// EsewaCallback settles an order from a gateway notification. The gateway
// delivers the payload either as a query parameter (redirect) or as a form
// field (server-to-server), so both are accepted. Unauthenticated: the
// signature inside the payload is the only trust anchor.
//
// GET|POST /api/v1/payments/esewa/callback
func (h *PaymentHandler) EsewaCallback(c *gin.Context) {
	ctx := c.Request.Context()

	req := dto.EsewaCallbackRequest{Data: c.Query("data")}
	if req.Data == "" {
		req.Data = c.PostForm("data")
	}

	if err := h.paymentService.ProcessEsewaCallback(ctx, &req); err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			logger.CtxWarn(ctx, "eSewa callback rejected",
				"code", appErr.Code,
				"error", appErr.Message,
				"ip", c.ClientIP(),
			)
			apperrors.HandleError(c, appErr)
		} else {
			logger.CtxWithError(ctx, "eSewa callback failed", err, "ip", c.ClientIP())
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return
	}

	c.JSON(http.StatusOK, dto.CallbackResponse{Success: true})
}

package handlers

import (
	"net/http"

	"websewa_backend/internal/dto"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/middleware"
	"websewa_backend/internal/services"
	"websewa_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	*BaseHandler
	checkoutService services.CheckoutService
}

func NewCheckoutHandler(v *validator.Validator, checkoutService services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler:     NewBaseHandler(v),
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) RegisterRoutes(r *gin.RouterGroup) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware())
	{
		checkout.POST("", h.Checkout)
	}
}

// Checkout creates a pending order for the authenticated user.
// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	principal, ok := h.GetAndAuthorizePrincipal(c)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	orderID, err := h.checkoutService.Checkout(c.Request.Context(), principal, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Checkout completed",
		"order_id", orderID,
		"owner_id", principal.UserID,
		"type", req.Type,
	)

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Success: true,
		OrderID: orderID,
	})
}

package handlers

import (
	"net/http"

	"websewa_backend/internal/dto"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/middleware"
	"websewa_backend/internal/models"
	"websewa_backend/internal/services"
	"websewa_backend/internal/validator"
	"websewa_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	*BaseHandler
	orderService services.OrderService
}

func NewOrderHandler(v *validator.Validator, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  NewBaseHandler(v),
		orderService: orderService,
	}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.GET("/my", h.MyOrders)
		orders.GET(":orderId", h.GetOrder)
	}

	admin := r.Group("/admin/orders")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.ListOrders)
		admin.GET("/unfulfilled", h.ListUnfulfilled)
		admin.PUT(":orderId/status", h.UpdateStatus)
	}
}

// MyOrders lists the caller's own orders, newest first.
// GET /api/v1/orders/my
func (h *OrderHandler) MyOrders(c *gin.Context) {
	principal, ok := h.GetAndAuthorizePrincipal(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	orders, err := h.orderService.ListByOwner(c.Request.Context(), principal.UserID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"page":    page,
	})
}

// GetOrder returns one order. Owners see their own; admins see any.
// GET /api/v1/orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	principal, ok := h.GetAndAuthorizePrincipal(c)
	if !ok {
		return
	}

	orderID := c.Param("orderId")
	if _, err := uuid.Parse(orderID); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid order id"))
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), principal, orderID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// ListOrders is the admin review queue, optionally filtered by status.
// GET /api/v1/admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var query dto.OrderListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, pageSize := query.Page, query.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	orders, total, err := h.orderService.List(c.Request.Context(), models.OrderStatus(query.Status), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"orders":    orders,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListUnfulfilled reports paid membership orders whose grant never landed,
// so an operator can investigate instead of guessing from payment status.
// GET /api/v1/admin/orders/unfulfilled
func (h *OrderHandler) ListUnfulfilled(c *gin.Context) {
	orders, err := h.orderService.ListPaidUnfulfilled(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// UpdateStatus is the manual settlement path for offline payment proof.
// A transition to paid runs the same fulfillment as a gateway callback.
// PUT /api/v1/admin/orders/:orderId/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	principal, ok := h.GetAndAuthorizePrincipal(c)
	if !ok {
		return
	}

	orderID := c.Param("orderId")
	if _, err := uuid.Parse(orderID); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid order id"))
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	err := h.orderService.UpdateStatus(c.Request.Context(), principal, orderID, models.OrderStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Order status updated by admin",
		"order_id", orderID,
		"new_status", req.Status,
		"admin_id", principal.UserID,
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
	})
}

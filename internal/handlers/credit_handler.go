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

type CreditHandler struct {
	*BaseHandler
	creditService services.CreditService
}

func NewCreditHandler(v *validator.Validator, creditService services.CreditService) *CreditHandler {
	return &CreditHandler{
		BaseHandler:   NewBaseHandler(v),
		creditService: creditService,
	}
}

func (h *CreditHandler) RegisterRoutes(r *gin.RouterGroup) {
	credits := r.Group("/credits")
	credits.Use(middleware.AuthMiddleware())
	{
		credits.GET("", h.Balance)
		credits.GET("/history", h.History)
		credits.POST("/use", h.UseCredits)
	}
}

// Balance returns the caller's current advanced-credit balance.
// GET /api/v1/credits
func (h *CreditHandler) Balance(c *gin.Context) {
	principal, ok := h.GetAndAuthorizePrincipal(c)
	if !ok {
		return
	}

	balance, err := h.creditService.Balance(c.Request.Context(), principal.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreditBalanceResponse{Balance: balance})
}

// History returns the caller's credit ledger, newest first.
// GET /api/v1/credits/history
func (h *CreditHandler) History(c *gin.Context) {
	principal, ok := h.GetAndAuthorizePrincipal(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	entries, total, err := h.creditService.History(c.Request.Context(), principal.UserID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": entries,
		"total":        total,
		"page":         page,
	})
}

// UseCredits debits the caller's balance for an advanced feature.
// POST /api/v1/credits/use
func (h *CreditHandler) UseCredits(c *gin.Context) {
	principal, ok := h.GetAndAuthorizePrincipal(c)
	if !ok {
		return
	}

	var req dto.UseCreditsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.creditService.UseCredits(c.Request.Context(), principal, req.Amount, req.Feature); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Credits used",
		"owner_id", principal.UserID,
		"amount", req.Amount,
		"feature", req.Feature,
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Credits deducted",
	})
}

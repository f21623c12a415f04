package handlers

import (
	"net/http"

	"websewa_backend/internal/services"
	"websewa_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(v *validator.Validator, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(v),
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	memberships := r.Group("/memberships")
	{
		memberships.GET("", h.ListMemberships)
	}
}

// ListMemberships returns the active membership plans. Public endpoint.
// GET /api/v1/memberships
func (h *CatalogHandler) ListMemberships(c *gin.Context) {
	memberships, err := h.catalogService.ListMemberships(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"memberships": memberships,
	})
}

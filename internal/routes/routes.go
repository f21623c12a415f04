package routes

import (
	"net/http"

	"websewa_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP route under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Catalog.RegisterRoutes(api)
		appHandlers.Checkout.RegisterRoutes(api)
		appHandlers.Payment.RegisterRoutes(api)
		appHandlers.Order.RegisterRoutes(api)
		appHandlers.Credit.RegisterRoutes(api)
	}
}

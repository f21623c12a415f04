package middleware

import (
	"net/http"
	"strings"

	"websewa_backend/internal/auth"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the resulting
// principal in both the gin context and the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		principal := auth.Principal{UserID: claims.UserID, Role: claims.Role}
		c.Set("principal", principal)

		ctx := auth.WithPrincipal(c.Request.Context(), principal)
		ctx = logger.WithUserID(ctx, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleMiddleware restricts a route group to a single role.
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("principal")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no principal"})
			return
		}

		principal, ok := val.(auth.Principal)
		if !ok || principal.Role != string(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from a gin context.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	val, exists := c.Get("principal")
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := val.(auth.Principal)
	return principal, ok
}

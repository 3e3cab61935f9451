package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gstbook/internal/domain"
	"gstbook/internal/service"
)

const (
	ContextKeyShop   = "shop"
	ContextKeyClaims = "claims"
)

// AuthMiddleware returns Gin middleware that validates the App Bridge session
// token and injects the shop the token was issued for.
func AuthMiddleware(sessionService service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, shop, err := sessionService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired session token"},
			})
			return
		}

		c.Set(ContextKeyShop, shop)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetShop extracts the authenticated shop domain from the Gin context.
func GetShop(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeyShop)
	if !exists {
		return "", domain.ErrUnauthorized
	}
	shop, ok := val.(string)
	if !ok || shop == "" {
		return "", domain.ErrUnauthorized
	}
	return shop, nil
}

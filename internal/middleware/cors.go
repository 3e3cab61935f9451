package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing (CORS).
// The Shopify admin and shop storefront origins are always allowed, plus any
// origin listed in extraOrigins.
func CORS(extraOrigins ...string) gin.HandlerFunc {
	allowedOrigins := map[string]bool{
		"https://admin.shopify.com": true,
	}
	for _, o := range extraOrigins {
		allowedOrigins[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowedOrigins[origin] || isShopOrigin(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS, PATCH")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, Origin, X-Requested-With, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func isShopOrigin(origin string) bool {
	host, ok := strings.CutPrefix(origin, "https://")
	return ok && strings.HasSuffix(host, ".myshopify.com") && !strings.ContainsAny(host, "/:")
}

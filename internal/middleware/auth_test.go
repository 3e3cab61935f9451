package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gstbook/internal/domain"
	"gstbook/internal/middleware"
	"gstbook/internal/service"
	"gstbook/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockSession := new(mocks.MockSessionService)
	claims := &service.SessionClaims{Dest: "https://acme.myshopify.com"}
	mockSession.On("ValidateToken", "valid-token").Return(claims, "acme.myshopify.com", nil)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockSession))
	r.GET("/test", func(c *gin.Context) {
		shop, _ := middleware.GetShop(c)
		c.JSON(http.StatusOK, gin.H{"shop": shop})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "acme.myshopify.com", resp["shop"])
	mockSession.AssertExpectations(t)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mockSession := new(mocks.MockSessionService)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockSession))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSession.AssertNotCalled(t, "ValidateToken", "")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mockSession := new(mocks.MockSessionService)
	mockSession.On("ValidateToken", "bad").Return(nil, "", errors.New("token is expired"))

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockSession))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestGetShop_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := middleware.GetShop(c)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

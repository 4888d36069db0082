// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/threadcart/threadcart-backend/internal/utils"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	r.GET("/admin", AuthRequired(), AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/public", OptionalAuth(), func(c *gin.Context) {
		_, authed := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"authed": authed})
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	r := protectedRouter()

	w := doRequest(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	r := protectedRouter()

	w := doRequest(r, "/me", "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, "/me", "Bearer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsInvalidToken(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	r := protectedRouter()

	w := doRequest(r, "/me", "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	r := protectedRouter()

	token, err := utils.GenerateJWT(uuid.New(), "customer@example.com", "CUSTOMER", 1)
	assert.NoError(t, err)

	w := doRequest(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CUSTOMER")
}

func TestAdminRequiredRejectsCustomer(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	r := protectedRouter()

	token, err := utils.GenerateJWT(uuid.New(), "customer@example.com", "CUSTOMER", 1)
	assert.NoError(t, err)

	w := doRequest(r, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRequiredAllowsAdmin(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	r := protectedRouter()

	token, err := utils.GenerateJWT(uuid.New(), "admin@threadcart.io", "ADMIN", 1)
	assert.NoError(t, err)

	w := doRequest(r, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthPassesThroughWithoutToken(t *testing.T) {
	r := protectedRouter()

	w := doRequest(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)
}

func TestOptionalAuthSetsContextWithToken(t *testing.T) {
	utils.SetJWTSecret("middleware-test-secret")
	r := protectedRouter()

	token, err := utils.GenerateJWT(uuid.New(), "customer@example.com", "CUSTOMER", 1)
	assert.NoError(t, err)

	w := doRequest(r, "/public", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":true`)
}

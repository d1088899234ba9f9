package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/med-a-api/internal/service"
	"github.com/noah-isme/med-a-api/pkg/config"
)

func newGuardedRouter(auth *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", AdminJWT(auth), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAdminJWTMissingHeader(t *testing.T) {
	auth := service.NewAuthService(config.JWTConfig{Secret: "test-secret", Expiration: time.Hour})
	r := newGuardedRouter(auth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminJWTMalformedHeader(t *testing.T) {
	auth := service.NewAuthService(config.JWTConfig{Secret: "test-secret", Expiration: time.Hour})
	r := newGuardedRouter(auth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminJWTValidToken(t *testing.T) {
	auth := service.NewAuthService(config.JWTConfig{Secret: "test-secret", Expiration: time.Hour})
	token, err := auth.IssueToken("admin@example.com")
	require.NoError(t, err)

	r := newGuardedRouter(auth)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

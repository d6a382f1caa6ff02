package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(cfg AuthConfig) *gin.Engine {
	r := gin.New()
	r.Use(Auth(cfg))
	r.GET("/health/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/todos", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthValidToken(t *testing.T) {
	cfg := AuthConfig{Secret: "test-secret", Issuer: "dashboard", Enabled: true}
	r := newAuthRouter(cfg)

	m := utils.NewJWTManager(cfg.Secret, cfg.Issuer)
	pair, err := m.GenerateTokenPair("u-1", "a@b.io", "user", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	w := doGet(r, "/api/v1/todos", pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")
}

func TestAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(AuthConfig{Secret: "test-secret", Issuer: "dashboard", Enabled: true})

	w := doGet(r, "/api/v1/todos", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	cfg := AuthConfig{Secret: "test-secret", Issuer: "dashboard", Enabled: true}
	r := newAuthRouter(cfg)

	m := utils.NewJWTManager(cfg.Secret, cfg.Issuer)
	pair, err := m.GenerateTokenPair("u-1", "a@b.io", "user", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	// 刷新 token 不能用于访问接口
	w := doGet(r, "/api/v1/todos", pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	cfg := AuthConfig{Secret: "test-secret", Issuer: "dashboard", Enabled: true}
	r := newAuthRouter(cfg)

	m := utils.NewJWTManager(cfg.Secret, cfg.Issuer)
	token, err := m.GenerateToken("u-1", "a@b.io", "user", "access", -time.Minute)
	require.NoError(t, err)

	w := doGet(r, "/api/v1/todos", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestAuthSkipPaths(t *testing.T) {
	r := newAuthRouter(AuthConfig{
		Secret:    "test-secret",
		Issuer:    "dashboard",
		Enabled:   true,
		SkipPaths: DefaultSkipPaths,
	})

	w := doGet(r, "/health/live", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthDisabled(t *testing.T) {
	r := newAuthRouter(AuthConfig{Enabled: false})

	w := doGet(r, "/api/v1/todos", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafe_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(tm *utils.TokenManager, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	chain := []gin.HandlerFunc{AuthMiddleware(tm)}
	if len(roles) > 0 {
		chain = append(chain, RoleAuthMiddleware(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetInt64(ContextUserIDKey),
			"role":   c.GetString(ContextUserRoleKey),
		})
	})
	engine.GET("/protected", chain...)
	return engine
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	tm := utils.NewTokenManager("test-secret", time.Hour)
	engine := newAuthTestRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	tm := utils.NewTokenManager("test-secret", time.Hour)
	engine := newAuthTestRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	tm := utils.NewTokenManager("test-secret", time.Hour)
	engine := newAuthTestRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsForeignSignature(t *testing.T) {
	issuer := utils.NewTokenManager("other-secret", time.Hour)
	token, err := issuer.GenerateToken(1, "jane@example.com", "admin")
	require.NoError(t, err)

	tm := utils.NewTokenManager("test-secret", time.Hour)
	engine := newAuthTestRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareSetsCallerContext(t *testing.T) {
	tm := utils.NewTokenManager("test-secret", time.Hour)
	token, err := tm.GenerateToken(7, "staff@example.com", "staff")
	require.NoError(t, err)

	engine := newAuthTestRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":7`)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestRoleAuthMiddlewareForbidsWrongRole(t *testing.T) {
	tm := utils.NewTokenManager("test-secret", time.Hour)
	token, err := tm.GenerateToken(7, "customer@example.com", "customer")
	require.NoError(t, err)

	engine := newAuthTestRouter(tm, "admin", "staff")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleAuthMiddlewareAllowsListedRole(t *testing.T) {
	tm := utils.NewTokenManager("test-secret", time.Hour)
	token, err := tm.GenerateToken(7, "admin@example.com", "admin")
	require.NoError(t, err)

	engine := newAuthTestRouter(tm, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

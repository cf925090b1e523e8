package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hexanode/accounts/internal/service"
	ctxutil "github.com/hexanode/accounts/pkg/context"
	"github.com/hexanode/accounts/pkg/redis"
	"github.com/hexanode/accounts/pkg/tokencache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := service.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	denylist := tokencache.NewDenylist(redis.NewClient(redis.Config{Enabled: false}, zap.NewNop()), 24*time.Hour)
	mw := NewJWTMiddleware(tokens, denylist)

	r := gin.New()
	r.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		userID, ok := ctxutil.GetUserID(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	r.GET("/optional", mw.OptionalAuth(), func(c *gin.Context) {
		_, ok := ctxutil.GetUserID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	return r, tokens
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, header := range []string{"Basic abc", "Bearer", "garbage"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	r, tokens := newTestRouter(t)

	token, err := tokens.IssueAccessToken(42, "user@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	r, tokens := newTestRouter(t)

	refresh, err := tokens.IssueRefreshToken(42)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r, tokens := newTestRouter(t)

	// Anonymous passes through.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/optional", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")

	// Authenticated is annotated.
	token, err := tokens.IssueAccessToken(7, "user@example.com")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}

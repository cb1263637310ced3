package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/dealdock/dealdock/internal/auth"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *iauth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "test-secret", Issuer: "dealdock"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(CtxUserIDKey)})
	})
	return r, jwt
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	r, jwt := newAuthTestRouter(t)

	token, err := jwt.GenerateSessionToken(iauth.SessionTokenInput{UserID: "user-77"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-77")
}

func TestAuthMiddlewareAcceptsSessionCookie(t *testing.T) {
	r, jwt := newAuthTestRouter(t)

	token, err := jwt.GenerateSessionToken(iauth.SessionTokenInput{UserID: "user-cookie"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-cookie")
}

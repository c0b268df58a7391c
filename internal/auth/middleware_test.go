package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelichko/study-backend/internal/auth"
	"github.com/avelichko/study-backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(issuer *token.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", auth.RequireAuth(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(auth.UserIDKey)})
	})
	return r
}

func getProtected(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret)
	r := newProtectedRouter(issuer)

	w := getProtected(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Access Denied", decodeBody(t, w)["message"])
}

func TestRequireAuthBadToken(t *testing.T) {
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret)
	r := newProtectedRouter(issuer)

	for _, header := range []string{
		"Bearer",         // no token part
		"Bearer garbage", // not a JWT
	} {
		w := getProtected(r, header)
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "Invalid Token", decodeBody(t, w)["message"])
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret)
	r := newProtectedRouter(issuer)

	claims := jwt.MapClaims{"id": "user-42", "exp": time.Now().Add(-time.Minute).Unix()}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	w := getProtected(r, "Bearer "+expired)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Invalid Token", decodeBody(t, w)["message"])
}

func TestRequireAuthRefreshTokenRejected(t *testing.T) {
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret)
	r := newProtectedRouter(issuer)

	refresh, err := issuer.IssueRefresh("user-42")
	require.NoError(t, err)

	w := getProtected(r, "Bearer "+refresh)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret)
	r := newProtectedRouter(issuer)

	access, err := issuer.IssueAccess("user-42")
	require.NoError(t, err)

	w := getProtected(r, "Bearer "+access)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-42", decodeBody(t, w)["userId"])
}

func TestRequireAuthSchemeIgnored(t *testing.T) {
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret)
	r := newProtectedRouter(issuer)

	access, err := issuer.IssueAccess("user-42")
	require.NoError(t, err)

	// Only the second whitespace-separated part matters.
	w := getProtected(r, "Token "+access)
	require.Equal(t, http.StatusOK, w.Code)
}

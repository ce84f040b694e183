package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/ctxutil"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(userID int64, role string) Claims {
	return Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newRouter(am *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger.NewNop()))
	r.GET("/me", am.RequireAuth(), func(c *gin.Context) {
		caller, _ := ctxutil.CallerFrom(c.Request.Context())
		c.JSON(http.StatusOK, caller)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	am := NewAuthMiddleware(secret, logger.NewNop())
	r := newRouter(am)

	expired := validClaims(7, "common")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(secret), validClaims(7, "admin")), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims(7, "admin")), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(secret), expired), http.StatusUnauthorized},
		{"no user id", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(secret), validClaims(0, "admin")), http.StatusUnauthorized},
		{"other algorithm", "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(secret), validClaims(7, "admin")), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestParseTokenRoles(t *testing.T) {
	am := NewAuthMiddleware(secret, logger.NewNop())

	caller, err := am.ParseToken(signToken(t, jwt.SigningMethodHS256, []byte(secret), validClaims(7, "admin")))
	require.NoError(t, err)
	assert.Equal(t, model.Caller{UserID: 7, Role: model.RoleAdmin}, caller)

	caller, err = am.ParseToken(signToken(t, jwt.SigningMethodHS256, []byte(secret), validClaims(8, "superuser")))
	require.NoError(t, err)
	assert.Equal(t, model.RoleCommon, caller.Role)
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	r := newRouter(NewAuthMiddleware(secret, logger.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/ctxutil"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	httpError "github.com/IT-Nick/vocational-profile/pkg/http"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims полезная нагрузка токена доступа. Токены выпускает внешний сервис авторизации.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware проверяет bearer-токен и кладет вызывающего пользователя в контекст запроса
type AuthMiddleware struct {
	secret []byte
	log    *logger.Logger
}

// NewAuthMiddleware создает новый экземпляр AuthMiddleware
func NewAuthMiddleware(secret string, baseLog *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), log: baseLog.With("middleware", "AuthMiddleware")}
}

// RequireAuth пропускает запрос дальше только с валидным токеном
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			httpError.ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}

		caller, err := am.ParseToken(tokenString)
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			httpError.ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}

		c.Request = c.Request.WithContext(ctxutil.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

// ParseToken проверяет подпись и срок действия токена и возвращает вызывающего пользователя
func (am *AuthMiddleware) ParseToken(tokenString string) (model.Caller, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return am.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.Caller{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return model.Caller{}, errors.New("invalid or expired token")
	}
	if claims.UserID <= 0 {
		return model.Caller{}, errors.New("token has no user id")
	}

	return model.Caller{UserID: claims.UserID, Role: model.ParseRole(claims.Role)}, nil
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

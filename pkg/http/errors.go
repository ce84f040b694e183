package http

import (
	"net/http"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/gin-gonic/gin"
)

// APIError тело ошибки в ответе API
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope конверт, в котором API возвращает ошибки
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ErrorResponse отправляет ошибку с заданным статусом и прерывает цепочку обработчиков
func ErrorResponse(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: message, Code: code}})
}

// StatusFor возвращает HTTP статус для вида ошибки
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Inconsistent:
		return http.StatusConflict
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.StoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError отправляет ошибку сервиса. Текст непредвиденных ошибок клиенту не отдается.
func RespondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(err)

	_ = c.Error(err)

	message := err.Error()
	if kind == apperr.KindUnknown || kind == apperr.NoAnswers {
		message = "internal error"
	}
	if kind == apperr.StoreUnavailable {
		c.Header("Retry-After", "1")
	}
	ErrorResponse(c, status, kind.String(), message)
}

// RespondOK отправляет успешный ответ
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

package request

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/ctxutil"
	httpError "github.com/IT-Nick/vocational-profile/pkg/http"
	"github.com/gin-gonic/gin"
)

// AnswerRequest тело запроса на запись или изменение ответа
type AnswerRequest struct {
	TestID     int `json:"test_id"`
	QuestionID int `json:"question_id"`
	OptionID   int `json:"option_id"`
}

// Validate проверяет, что все идентификаторы положительные
func (r AnswerRequest) Validate() error {
	var errs []error
	if r.TestID <= 0 {
		errs = append(errs, errors.New("test_id must be a positive integer"))
	}
	if r.QuestionID <= 0 {
		errs = append(errs, errors.New("question_id must be a positive integer"))
	}
	if r.OptionID <= 0 {
		errs = append(errs, errors.New("option_id must be a positive integer"))
	}
	return errors.Join(errs...)
}

// BindAnswer разбирает и проверяет тело запроса. При ошибке ответ уже отправлен.
func BindAnswer(c *gin.Context) (AnswerRequest, bool) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpError.ErrorResponse(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return req, false
	}
	if err := req.Validate(); err != nil {
		httpError.ErrorResponse(c, http.StatusBadRequest, "bad_request", err.Error())
		return req, false
	}
	return req, true
}

// PositiveInt разбирает положительное целое из строки параметра
func PositiveInt(name, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// BindTestID читает test_id из query. При ошибке ответ уже отправлен.
func BindTestID(c *gin.Context, value string) (int, bool) {
	testID, err := PositiveInt("test_id", value)
	if err != nil {
		httpError.ErrorResponse(c, http.StatusBadRequest, "bad_request", err.Error())
		return 0, false
	}
	return testID, true
}

// Caller возвращает вызывающего пользователя, которого положил AuthMiddleware
func Caller(c *gin.Context) (model.Caller, bool) {
	caller, ok := ctxutil.CallerFrom(c.Request.Context())
	if !ok {
		httpError.ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "caller is not authenticated")
	}
	return caller, ok
}

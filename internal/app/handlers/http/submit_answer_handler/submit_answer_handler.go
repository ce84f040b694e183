package submit_answer_handler

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/request"
	answersService "github.com/IT-Nick/vocational-profile/internal/domain/answers/service"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	httpError "github.com/IT-Nick/vocational-profile/pkg/http"
	"github.com/gin-gonic/gin"
)

// AnswerSubmitter записывает ответ и при полном наборе вычисляет профиль
type AnswerSubmitter interface {
	SubmitAnswer(ctx context.Context, testID, questionID, optionID int, caller model.Caller) (*answersService.Result, error)
}

// SubmitAnswerHandler обработчик POST /api/answers
type SubmitAnswerHandler struct {
	answerService AnswerSubmitter
}

// NewSubmitAnswerHandler создает новый экземпляр обработчика
func NewSubmitAnswerHandler(answerService AnswerSubmitter) *SubmitAnswerHandler {
	return &SubmitAnswerHandler{answerService: answerService}
}

// Handle записывает ответ вызывающего пользователя
func (h *SubmitAnswerHandler) Handle(c *gin.Context) {
	caller, ok := request.Caller(c)
	if !ok {
		return
	}

	req, ok := request.BindAnswer(c)
	if !ok {
		return
	}

	result, err := h.answerService.SubmitAnswer(c.Request.Context(), req.TestID, req.QuestionID, req.OptionID, caller)
	if err != nil {
		httpError.RespondError(c, err)
		return
	}

	httpError.RespondOK(c, result)
}

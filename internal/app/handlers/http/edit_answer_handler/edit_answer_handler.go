package edit_answer_handler

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/request"
	answersService "github.com/IT-Nick/vocational-profile/internal/domain/answers/service"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	httpError "github.com/IT-Nick/vocational-profile/pkg/http"
	"github.com/gin-gonic/gin"
)

// AnswerEditor меняет выбранный вариант и пересчитывает профиль
type AnswerEditor interface {
	EditAnswer(ctx context.Context, testID, questionID, optionID int, caller model.Caller) (*answersService.Result, error)
}

// EditAnswerHandler обработчик PUT /api/answers
type EditAnswerHandler struct {
	answerService AnswerEditor
}

// NewEditAnswerHandler создает новый экземпляр обработчика
func NewEditAnswerHandler(answerService AnswerEditor) *EditAnswerHandler {
	return &EditAnswerHandler{answerService: answerService}
}

// Handle меняет ответ вызывающего пользователя
func (h *EditAnswerHandler) Handle(c *gin.Context) {
	caller, ok := request.Caller(c)
	if !ok {
		return
	}

	req, ok := request.BindAnswer(c)
	if !ok {
		return
	}

	result, err := h.answerService.EditAnswer(c.Request.Context(), req.TestID, req.QuestionID, req.OptionID, caller)
	if err != nil {
		httpError.RespondError(c, err)
		return
	}

	httpError.RespondOK(c, result)
}

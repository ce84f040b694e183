package delete_answers_handler

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/request"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	httpError "github.com/IT-Nick/vocational-profile/pkg/http"
	"github.com/gin-gonic/gin"
)

// AnswerPurger удаляет ответы всех пользователей по тесту
type AnswerPurger interface {
	AdminDeleteAnswersForTest(ctx context.Context, testID int, caller model.Caller) (int, error)
}

// DeleteAnswersResponse ответ с количеством удаленных ответов
type DeleteAnswersResponse struct {
	TestID  int `json:"test_id"`
	Deleted int `json:"deleted"`
}

// DeleteAnswersHandler обработчик DELETE /api/answers?test_id=N, только для администратора
type DeleteAnswersHandler struct {
	answerService AnswerPurger
}

// NewDeleteAnswersHandler создает новый экземпляр обработчика
func NewDeleteAnswersHandler(answerService AnswerPurger) *DeleteAnswersHandler {
	return &DeleteAnswersHandler{answerService: answerService}
}

func (h *DeleteAnswersHandler) Handle(c *gin.Context) {
	caller, ok := request.Caller(c)
	if !ok {
		return
	}

	testID, ok := request.BindTestID(c, c.Query("test_id"))
	if !ok {
		return
	}

	deleted, err := h.answerService.AdminDeleteAnswersForTest(c.Request.Context(), testID, caller)
	if err != nil {
		httpError.RespondError(c, err)
		return
	}

	httpError.RespondOK(c, DeleteAnswersResponse{TestID: testID, Deleted: deleted})
}

package list_answers_handler

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/http/request"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	httpError "github.com/IT-Nick/vocational-profile/pkg/http"
	"github.com/gin-gonic/gin"
)

// AnswerLister возвращает ответы пользователя с текстом вопросов и вариантов
type AnswerLister interface {
	ListAnswerDetails(ctx context.Context, testID int, userID int64) ([]model.AnswerDetails, error)
}

// ListAnswersResponse ответы пользователя по тесту
type ListAnswersResponse struct {
	TestID  int                   `json:"test_id"`
	Answers []model.AnswerDetails `json:"answers"`
}

// ListAnswersHandler обработчик GET /api/answers?test_id=N
type ListAnswersHandler struct {
	answerService AnswerLister
}

// NewListAnswersHandler создает новый экземпляр обработчика
func NewListAnswersHandler(answerService AnswerLister) *ListAnswersHandler {
	return &ListAnswersHandler{answerService: answerService}
}

func (h *ListAnswersHandler) Handle(c *gin.Context) {
	caller, ok := request.Caller(c)
	if !ok {
		return
	}

	testID, ok := request.BindTestID(c, c.Query("test_id"))
	if !ok {
		return
	}

	answers, err := h.answerService.ListAnswerDetails(c.Request.Context(), testID, caller.UserID)
	if err != nil {
		httpError.RespondError(c, err)
		return
	}

	httpError.RespondOK(c, ListAnswersResponse{TestID: testID, Answers: answers})
}

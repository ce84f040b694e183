package select_test_handler

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/tgutil"
	answersService "github.com/IT-Nick/vocational-profile/internal/domain/answers/service"
	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"gopkg.in/telebot.v4"
)

// QuestionProvider возвращает очередной вопрос теста для пользователя
type QuestionProvider interface {
	NextQuestion(ctx context.Context, testID int, userID int64) (*answersService.QuestionStep, error)
}

// TestGetter возвращает тест по ID
type TestGetter interface {
	GetTestByID(ctx context.Context, testID int) (*model.Test, error)
}

// ProfileGetter возвращает профиль пользователя по тесту
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID int64, testID int) (*model.Profile, error)
}

// SelectTestHandler обрабатывает выбор теста (callback test_<id>) и отправляет первый неотвеченный вопрос
type SelectTestHandler struct {
	answerService  QuestionProvider
	testService    TestGetter
	profileService ProfileGetter
	messageService tgutil.Formatter
	log            *logger.Logger
}

func NewSelectTestHandler(
	answerService QuestionProvider,
	testService TestGetter,
	profileService ProfileGetter,
	messageService tgutil.Formatter,
	baseLog *logger.Logger,
) *SelectTestHandler {
	return &SelectTestHandler{
		answerService:  answerService,
		testService:    testService,
		profileService: profileService,
		messageService: messageService,
		log:            baseLog.With("handler", "SelectTestHandler"),
	}
}

func (h *SelectTestHandler) Handle(c telebot.Context) error {
	ctx, cancel := tgutil.Context()
	defer cancel()

	_ = c.Respond()

	testID, err := tgutil.ParseSelectTestData(c.Callback().Data)
	if err != nil {
		return c.Send(h.messageService.Format(ctx, model.StaleButtonKey))
	}

	userID := c.Sender().ID
	step, err := h.answerService.NextQuestion(ctx, testID, userID)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return c.Send(h.messageService.Format(ctx, model.StaleButtonKey))
		}
		h.log.Error("failed to get next question", "test_id", testID, "user_id", userID, "error", err)
		return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
	}

	if step != nil {
		return tgutil.SendQuestion(ctx, c, h.messageService, step)
	}

	// На все вопросы уже есть ответы: показываем результат
	test, err := h.testService.GetTestByID(ctx, testID)
	if err != nil {
		h.log.Error("failed to get test", "test_id", testID, "error", err)
		return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
	}

	profile, err := h.profileService.GetProfile(ctx, userID, testID)
	if err != nil && !apperr.Is(err, apperr.NotFound) {
		h.log.Error("failed to get profile", "test_id", testID, "user_id", userID, "error", err)
	}

	return tgutil.SendFinished(ctx, c, h.messageService, test, profile)
}

func (h *SelectTestHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

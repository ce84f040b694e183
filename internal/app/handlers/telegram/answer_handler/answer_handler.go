package answer_handler

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/tgutil"
	answersService "github.com/IT-Nick/vocational-profile/internal/domain/answers/service"
	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"gopkg.in/telebot.v4"
)

// AnswerService операции с ответами, которые использует обработчик
type AnswerService interface {
	IsAnswered(ctx context.Context, testID, questionID int, userID int64) (bool, error)
	SubmitAnswer(ctx context.Context, testID, questionID, optionID int, caller model.Caller) (*answersService.Result, error)
	EditAnswer(ctx context.Context, testID, questionID, optionID int, caller model.Caller) (*answersService.Result, error)
	NextQuestion(ctx context.Context, testID int, userID int64) (*answersService.QuestionStep, error)
}

// TestGetter возвращает тест по ID
type TestGetter interface {
	GetTestByID(ctx context.Context, testID int) (*model.Test, error)
}

// AnswerHandler обрабатывает выбор варианта (callback answer_<test>_<question>_<option>).
// Первый выбор записывает ответ, повторный выбор в том же вопросе меняет его.
type AnswerHandler struct {
	answerService  AnswerService
	testService    TestGetter
	messageService tgutil.Formatter
	admins         tgutil.AdminChecker
	log            *logger.Logger
}

func NewAnswerHandler(
	answerService AnswerService,
	testService TestGetter,
	messageService tgutil.Formatter,
	admins tgutil.AdminChecker,
	baseLog *logger.Logger,
) *AnswerHandler {
	return &AnswerHandler{
		answerService:  answerService,
		testService:    testService,
		messageService: messageService,
		admins:         admins,
		log:            baseLog.With("handler", "AnswerHandler"),
	}
}

func (h *AnswerHandler) Handle(c telebot.Context) error {
	ctx, cancel := tgutil.Context()
	defer cancel()

	_ = c.Respond()

	testID, questionID, optionID, err := tgutil.ParseAnswerData(c.Callback().Data)
	if err != nil {
		return c.Send(h.messageService.Format(ctx, model.StaleButtonKey))
	}

	caller := tgutil.Caller(c, h.admins)
	log := h.log.With("test_id", testID, "question_id", questionID, "user_id", caller.UserID)

	answered, err := h.answerService.IsAnswered(ctx, testID, questionID, caller.UserID)
	if err != nil {
		log.Error("failed to check answer", "error", err)
		return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
	}

	var result *answersService.Result
	if answered {
		result, err = h.answerService.EditAnswer(ctx, testID, questionID, optionID, caller)
	} else {
		result, err = h.answerService.SubmitAnswer(ctx, testID, questionID, optionID, caller)
	}
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.NotFound, apperr.Inconsistent:
			log.Warn("answer rejected", "option_id", optionID, "error", err)
			return c.Send(h.messageService.Format(ctx, model.StaleButtonKey))
		default:
			log.Error("failed to save answer", "option_id", optionID, "error", err)
			return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
		}
	}

	if result.ProfileComputed {
		return h.sendProfile(ctx, c, testID, result.Profile)
	}

	step, err := h.answerService.NextQuestion(ctx, testID, caller.UserID)
	if err != nil {
		log.Error("failed to get next question", "error", err)
		return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
	}
	if step == nil {
		// Ответы есть на все вопросы, но профиль в этом запросе не вычислен
		return h.sendProfile(ctx, c, testID, nil)
	}
	return tgutil.SendQuestion(ctx, c, h.messageService, step)
}

func (h *AnswerHandler) sendProfile(ctx context.Context, c telebot.Context, testID int, profile *model.Profile) error {
	test, err := h.testService.GetTestByID(ctx, testID)
	if err != nil {
		h.log.Error("failed to get test", "test_id", testID, "error", err)
		return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
	}
	return tgutil.SendFinished(ctx, c, h.messageService, test, profile)
}

func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

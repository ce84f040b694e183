package start_handler

import (
	"context"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/tgutil"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"gopkg.in/telebot.v4"
)

// TestLister возвращает доступные тесты
type TestLister interface {
	ListTests(ctx context.Context) ([]model.Test, error)
}

// StartHandler структура для обработки команды /start
type StartHandler struct {
	testService    TestLister
	messageService tgutil.Formatter
	log            *logger.Logger
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(testService TestLister, messageService tgutil.Formatter, baseLog *logger.Logger) *StartHandler {
	return &StartHandler{
		testService:    testService,
		messageService: messageService,
		log:            baseLog.With("handler", "StartHandler"),
	}
}

// Handle показывает список тестов инлайн-кнопками
func (h *StartHandler) Handle(c telebot.Context) error {
	ctx, cancel := tgutil.Context()
	defer cancel()

	tests, err := h.testService.ListTests(ctx)
	if err != nil {
		h.log.Error("failed to list tests", "user_id", c.Sender().ID, "error", err)
		return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
	}

	if len(tests) == 0 {
		return c.Send(h.messageService.Format(ctx, model.NoTestsMessageKey))
	}

	welcome := h.messageService.Format(ctx, model.WelcomeMessageKey, tgutil.Escape(c.Sender().FirstName))
	return c.Send(welcome, tgutil.HTMLOptions(tgutil.TestsMarkup(tests)))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

package purge_handler

import (
	"context"
	"strconv"

	"github.com/IT-Nick/vocational-profile/internal/app/handlers/telegram/tgutil"
	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"gopkg.in/telebot.v4"
)

// AnswerPurger удаляет ответы всех пользователей по тесту
type AnswerPurger interface {
	AdminDeleteAnswersForTest(ctx context.Context, testID int, caller model.Caller) (int, error)
}

// PurgeHandler обработчик команды администратора /purge <test_id>
type PurgeHandler struct {
	answerService  AnswerPurger
	messageService tgutil.Formatter
	admins         tgutil.AdminChecker
	log            *logger.Logger
}

func NewPurgeHandler(answerService AnswerPurger, messageService tgutil.Formatter, admins tgutil.AdminChecker, baseLog *logger.Logger) *PurgeHandler {
	return &PurgeHandler{
		answerService:  answerService,
		messageService: messageService,
		admins:         admins,
		log:            baseLog.With("handler", "PurgeHandler"),
	}
}

func (h *PurgeHandler) Handle(c telebot.Context) error {
	ctx, cancel := tgutil.Context()
	defer cancel()

	args := c.Args()
	if len(args) != 1 {
		return c.Send(h.messageService.Format(ctx, model.PurgeUsageMessageKey))
	}
	testID, err := strconv.Atoi(args[0])
	if err != nil || testID <= 0 {
		return c.Send(h.messageService.Format(ctx, model.PurgeUsageMessageKey))
	}

	caller := tgutil.Caller(c, h.admins)
	deleted, err := h.answerService.AdminDeleteAnswersForTest(ctx, testID, caller)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.Forbidden:
			h.log.Warn("purge denied", "user_id", caller.UserID, "test_id", testID)
			return c.Send(h.messageService.Format(ctx, model.ForbiddenMessageKey))
		case apperr.NotFound:
			return c.Send(h.messageService.Format(ctx, model.NothingToPurgeKey, testID))
		default:
			h.log.Error("failed to purge answers", "test_id", testID, "error", err)
			return c.Send(h.messageService.Format(ctx, model.ErrorMessageKey))
		}
	}

	return c.Send(h.messageService.Format(ctx, model.PurgeDoneMessageKey, testID, deleted))
}

func (h *PurgeHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

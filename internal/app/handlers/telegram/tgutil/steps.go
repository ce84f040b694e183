package tgutil

import (
	"context"
	"fmt"

	answersService "github.com/IT-Nick/vocational-profile/internal/domain/answers/service"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"gopkg.in/telebot.v4"
)

// Formatter возвращает текст сообщения по ключу
type Formatter interface {
	Format(ctx context.Context, messageKey string, args ...any) string
}

// SendQuestion отправляет очередной вопрос теста с вариантами ответа
func SendQuestion(ctx context.Context, c telebot.Context, messages Formatter, step *answersService.QuestionStep) error {
	text := messages.Format(ctx, model.QuestionMessageKey, step.Number, step.Total, Escape(step.Question.Statement))
	if err := c.Send(text, HTMLOptions(OptionsMarkup(step.Test.ID, step.Options))); err != nil {
		return fmt.Errorf("failed to send question: %w", err)
	}
	return nil
}

// ProfileText текст с результатом теста
func ProfileText(ctx context.Context, messages Formatter, testName string, profile *model.Profile) string {
	return messages.Format(ctx, model.ProfileMessageKey,
		Escape(testName), Escape(profile.PrimaryCategory), Escape(profile.SecondaryCategory))
}

// SendFinished сообщает, что на все вопросы теста даны ответы, и показывает профиль, если он есть
func SendFinished(ctx context.Context, c telebot.Context, messages Formatter, test *model.Test, profile *model.Profile) error {
	text := messages.Format(ctx, model.TestFinishedKey, Escape(test.Name))
	if profile != nil {
		text += "\n" + ProfileText(ctx, messages, test.Name, profile)
	}
	if err := c.Send(text, HTMLOptions(nil)); err != nil {
		return fmt.Errorf("failed to send result: %w", err)
	}
	return nil
}

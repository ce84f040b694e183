package service

import (
	"context"
	"fmt"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
)

// defaultMessages используются, когда шаблона нет в базе или база недоступна
var defaultMessages = map[string]string{
	model.WelcomeMessageKey:    "Привет, %s! Выберите тест, чтобы определить свое направление:",
	model.NoTestsMessageKey:    "Сейчас нет доступных тестов.",
	model.QuestionMessageKey:   "<b>Вопрос %d из %d</b>\n%s",
	model.TestFinishedKey:      "Вы ответили на все вопросы теста «%s».",
	model.ProfileMessageKey:    "Тест «%s»: основное направление <b>%s</b>, дополнительное <b>%s</b>.",
	model.NoProfilesMessageKey: "У вас пока нет результатов. Пройдите тест целиком, чтобы получить профиль.",
	model.PurgeDoneMessageKey:  "Удалено ответов по тесту #%d: %d. Профили пользователей сохранены.",
	model.PurgeUsageMessageKey: "Использование: /purge <id теста>",
	model.NothingToPurgeKey:    "По тесту #%d нет ответов.",
	model.ForbiddenMessageKey:  "Команда доступна только администраторам.",
	model.StaleButtonKey:       "Этот вариант больше недоступен, откройте тест заново через /start.",
	model.ErrorMessageKey:      "Что-то пошло не так, попробуйте еще раз.",
}

// MessageRepository источник шаблонов сообщений
type MessageRepository interface {
	GetMessageByKey(ctx context.Context, messageKey string) (string, error)
}

// MessageService содержит логику для работы с сообщениями
type MessageService struct {
	messageRepo MessageRepository
	log         *logger.Logger
}

// NewMessageService создает новый экземпляр MessageService
func NewMessageService(messageRepo MessageRepository, baseLog *logger.Logger) *MessageService {
	return &MessageService{messageRepo: messageRepo, log: baseLog.With("service", "MessageService")}
}

// GetMessageByKey возвращает шаблон сообщения по ключу из базы данных,
// а если его там нет, то встроенный шаблон
func (s *MessageService) GetMessageByKey(ctx context.Context, messageKey string) (string, error) {
	message, err := s.messageRepo.GetMessageByKey(ctx, messageKey)
	if err == nil {
		return message, nil
	}

	fallback, ok := defaultMessages[messageKey]
	if !ok {
		return "", fmt.Errorf("failed to get message by key: %w", err)
	}
	if !apperr.Is(err, apperr.NotFound) {
		s.log.Warn("message template unavailable, using default", "key", messageKey, "error", err)
	}
	return fallback, nil
}

// Format возвращает сообщение по ключу с подставленными аргументами
func (s *MessageService) Format(ctx context.Context, messageKey string, args ...any) string {
	template, err := s.GetMessageByKey(ctx, messageKey)
	if err != nil {
		s.log.Error("unknown message key", "key", messageKey, "error", err)
		return messageKey
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

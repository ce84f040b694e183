package tgutil

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"gopkg.in/telebot.v4"
)

const requestTimeout = 15 * time.Second

// AdminChecker определяет администраторов по ID пользователя telegram
type AdminChecker interface {
	IsTelegramAdmin(telegramID int64) bool
}

// Caller возвращает вызывающего пользователя по отправителю сообщения
func Caller(c telebot.Context, admins AdminChecker) model.Caller {
	userID := c.Sender().ID
	role := model.RoleCommon
	if admins != nil && admins.IsTelegramAdmin(userID) {
		role = model.RoleAdmin
	}
	return model.Caller{UserID: userID, Role: role}
}

// Context возвращает контекст с таймаутом на обработку одного обновления
func Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// TestsMarkup клавиатура со списком тестов, по кнопке на строку
func TestsMarkup(tests []model.Test) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(tests))
	for _, test := range tests {
		rows = append(rows, markup.Row(markup.Data(test.Name, SelectTestData(test.ID))))
	}
	markup.Inline(rows...)
	return markup
}

// OptionsMarkup клавиатура с вариантами ответа на вопрос
func OptionsMarkup(testID int, options []model.Option) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(options))
	for i, option := range options {
		btnText := fmt.Sprintf("%d. %s", i+1, option.Text)
		rows = append(rows, markup.Row(markup.Data(btnText, AnswerData(testID, option.QuestionID, option.ID))))
	}
	markup.Inline(rows...)
	return markup
}

// HTMLOptions параметры отправки сообщения в HTML-разметке
func HTMLOptions(markup *telebot.ReplyMarkup) *telebot.SendOptions {
	return &telebot.SendOptions{ParseMode: telebot.ModeHTML, ReplyMarkup: markup}
}

// Escape экранирует пользовательский текст для HTML-разметки
func Escape(s string) string {
	return html.EscapeString(s)
}

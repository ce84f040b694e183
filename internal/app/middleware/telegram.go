package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"gopkg.in/telebot.v4"
)

// TelegramRecover перехватывает панику в обработчике бота и превращает ее в ошибку,
// которую telebot передаст в Settings.OnError
func TelegramRecover(baseLog *logger.Logger) telebot.MiddlewareFunc {
	log := baseLog.With("middleware", "TelegramRecover")

	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = fmt.Errorf("panic in telegram handler: %w", x)
					case string:
						err = errors.New("panic in telegram handler: " + x)
					default:
						err = fmt.Errorf("panic in telegram handler: %v", x)
					}
					log.Error("recovered from panic", "error", err)
				}
			}()
			return next(c)
		}
	}
}

// TelegramLogger пишет в лог тип обновления, отправителя и длительность обработки
func TelegramLogger(baseLog *logger.Logger) telebot.MiddlewareFunc {
	log := baseLog.With("middleware", "TelegramLogger")

	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			start := time.Now()
			err := next(c)

			fields := []interface{}{"latency", time.Since(start)}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, "user_id", sender.ID)
			}
			switch {
			case c.Callback() != nil:
				fields = append(fields, "callback", c.Callback().Data)
			case c.Message() != nil:
				fields = append(fields, "text", c.Message().Text)
			}

			if err != nil {
				log.Warn("telegram update failed", append(fields, "error", err)...)
			} else {
				log.Debug("telegram update", fields...)
			}
			return err
		}
	}
}

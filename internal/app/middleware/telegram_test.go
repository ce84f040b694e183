package middleware

import (
	"errors"
	"testing"

	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

type updateContext struct {
	telebot.Context
}

func (updateContext) Sender() *telebot.User { return &telebot.User{ID: 5} }
func (updateContext) Callback() *telebot.Callback { return &telebot.Callback{Data: "\ftest_1"} }

func TestTelegramRecover(t *testing.T) {
	handler := TelegramRecover(logger.NewNop())(func(telebot.Context) error {
		panic("boom")
	})

	err := handler(updateContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	cause := errors.New("nil map")
	handler = TelegramRecover(logger.NewNop())(func(telebot.Context) error {
		panic(cause)
	})
	assert.ErrorIs(t, handler(updateContext{}), cause)
}

func TestTelegramLoggerPassesError(t *testing.T) {
	want := errors.New("send failed")
	handler := TelegramLogger(logger.NewNop())(func(telebot.Context) error { return want })

	assert.ErrorIs(t, handler(updateContext{}), want)
}

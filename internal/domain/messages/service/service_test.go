package service

import (
	"context"
	"errors"
	"testing"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	messages map[string]string
	err      error
}

func (f *fakeMessageRepo) GetMessageByKey(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if m, ok := f.messages[key]; ok {
		return m, nil
	}
	return "", apperr.Newf(apperr.NotFound, "get", "message %s not found", key)
}

func TestGetMessageByKeyPrefersDatabase(t *testing.T) {
	svc := NewMessageService(&fakeMessageRepo{messages: map[string]string{
		model.NoTestsMessageKey: "Тестов нет",
	}}, logger.NewNop())

	msg, err := svc.GetMessageByKey(context.Background(), model.NoTestsMessageKey)
	require.NoError(t, err)
	assert.Equal(t, "Тестов нет", msg)
}

func TestGetMessageByKeyFallsBack(t *testing.T) {
	svc := NewMessageService(&fakeMessageRepo{err: errors.New("connection refused")}, logger.NewNop())

	msg, err := svc.GetMessageByKey(context.Background(), model.ErrorMessageKey)
	require.NoError(t, err)
	assert.Equal(t, defaultMessages[model.ErrorMessageKey], msg)

	_, err = svc.GetMessageByKey(context.Background(), "unknown_key")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	svc := NewMessageService(&fakeMessageRepo{}, logger.NewNop())

	msg := svc.Format(context.Background(), model.PurgeDoneMessageKey, 3, 12)
	assert.Equal(t, "Удалено ответов по тесту #3: 12. Профили пользователей сохранены.", msg)

	assert.Equal(t, "unknown_key", svc.Format(context.Background(), "unknown_key"))
}

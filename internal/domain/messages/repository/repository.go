package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/infra/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository репозиторий шаблонов сообщений бота
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository создает новый экземпляр MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// GetMessageByKey возвращает текст сообщения по ключу
func (r *MessageRepository) GetMessageByKey(ctx context.Context, messageKey string) (string, error) {
	const op = "MessageRepository.GetMessageByKey"

	var messageText string
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, "SELECT message_text FROM messages WHERE message_key = $1", messageKey).
		Scan(&messageText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.Newf(apperr.NotFound, op, "message with key %s not found", messageKey)
		}
		return "", postgres.Classify(op, fmt.Errorf("failed to get message: %w", err))
	}
	return messageText, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"github.com/IT-Nick/vocational-profile/internal/infra/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnswerRepository репозиторий для работы с ответами пользователей (таблица user_answers)
type AnswerRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewAnswerRepository создает новый экземпляр AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool, baseLog *logger.Logger) *AnswerRepository {
	return &AnswerRepository{db: db, log: baseLog.With("repo", "AnswerRepository")}
}

// Create сохраняет ответ пользователя. Если ответ на этот вопрос уже есть,
// строка не создается и возвращается created=false.
func (r *AnswerRepository) Create(ctx context.Context, testID, questionID, optionID int, userID int64) (int, bool, error) {
	var answerID int
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, `
                INSERT INTO user_answers (test_id, question_id, option_id, user_id, created_at, updated_at)
                VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
                ON CONFLICT (test_id, question_id, user_id) DO NOTHING
                RETURNING id
        `, testID, questionID, optionID, userID).Scan(&answerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, postgres.Classify("AnswerRepository.Create", fmt.Errorf("failed to save answer: %w", err))
	}
	return answerID, true, nil
}

// GetByTestQuestionUser получает ответ пользователя на вопрос теста. Если ответа нет, возвращает nil.
func (r *AnswerRepository) GetByTestQuestionUser(ctx context.Context, testID, questionID int, userID int64) (*model.Answer, error) {
	var a model.Answer
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, `
                SELECT id, test_id, question_id, option_id, user_id, created_at, updated_at
                FROM user_answers
                WHERE test_id = $1 AND question_id = $2 AND user_id = $3
        `, testID, questionID, userID).Scan(&a.ID, &a.TestID, &a.QuestionID, &a.OptionID, &a.UserID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.Classify("AnswerRepository.GetByTestQuestionUser", fmt.Errorf("failed to get answer: %w", err))
	}
	return &a, nil
}

// UpdateOption перезаписывает выбранный вариант ответа
func (r *AnswerRepository) UpdateOption(ctx context.Context, answerID, optionID int) error {
	const op = "AnswerRepository.UpdateOption"

	result, err := postgres.Conn(ctx, r.db).Exec(ctx, `
                UPDATE user_answers
                SET option_id = $2,
                        updated_at = CURRENT_TIMESTAMP
                WHERE id = $1
        `, answerID, optionID)
	if err != nil {
		return postgres.Classify(op, fmt.Errorf("failed to update answer: %w", err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: answer %d disappeared during update", op, answerID)
	}
	return nil
}

// CountAnsweredQuestions возвращает количество различных вопросов теста, на которые ответил пользователь
func (r *AnswerRepository) CountAnsweredQuestions(ctx context.Context, testID int, userID int64) (int, error) {
	var count int
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, `
                SELECT COUNT(DISTINCT question_id)
                FROM user_answers
                WHERE test_id = $1 AND user_id = $2
        `, testID, userID).Scan(&count)
	if err != nil {
		return 0, postgres.Classify("AnswerRepository.CountAnsweredQuestions", fmt.Errorf("failed to count answers: %w", err))
	}
	return count, nil
}

// ListByTestAndUser получает все ответы пользователя по тесту в порядке возрастания ID вопроса.
// Порядок стабилен, от него зависит разрешение ничьих при вычислении профиля.
func (r *AnswerRepository) ListByTestAndUser(ctx context.Context, testID int, userID int64) ([]model.Answer, error) {
	const op = "AnswerRepository.ListByTestAndUser"

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, `
                SELECT id, test_id, question_id, option_id, user_id, created_at, updated_at
                FROM user_answers
                WHERE test_id = $1 AND user_id = $2
                ORDER BY question_id, id
        `, testID, userID)
	if err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("failed to query answers: %w", err))
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.TestID, &a.QuestionID, &a.OptionID, &a.UserID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, postgres.Classify(op, fmt.Errorf("failed to scan answer: %w", err))
		}
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("error in rows: %w", err))
	}
	return answers, nil
}

// ListDetailsByTestAndUser получает ответы пользователя вместе с текстом вопроса и варианта
func (r *AnswerRepository) ListDetailsByTestAndUser(ctx context.Context, testID int, userID int64) ([]model.AnswerDetails, error) {
	const op = "AnswerRepository.ListDetailsByTestAndUser"

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, `
                SELECT ua.id, ua.question_id, q.statement, ua.option_id, o.option_text
                FROM user_answers ua
                JOIN questions q ON q.id = ua.question_id
                JOIN options o ON o.id = ua.option_id
                WHERE ua.test_id = $1 AND ua.user_id = $2
                ORDER BY ua.question_id
        `, testID, userID)
	if err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("failed to query answer details: %w", err))
	}
	defer rows.Close()

	var details []model.AnswerDetails
	for rows.Next() {
		var d model.AnswerDetails
		if err := rows.Scan(&d.ID, &d.QuestionID, &d.Statement, &d.OptionID, &d.OptionText); err != nil {
			return nil, postgres.Classify(op, fmt.Errorf("failed to scan answer details: %w", err))
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("error in rows: %w", err))
	}
	return details, nil
}

// DeleteByTestID удаляет все ответы всех пользователей по тесту и возвращает число удаленных строк
func (r *AnswerRepository) DeleteByTestID(ctx context.Context, testID int) (int, error) {
	result, err := postgres.Conn(ctx, r.db).Exec(ctx, "DELETE FROM user_answers WHERE test_id = $1", testID)
	if err != nil {
		return 0, postgres.Classify("AnswerRepository.DeleteByTestID", fmt.Errorf("failed to delete answers: %w", err))
	}
	return int(result.RowsAffected()), nil
}

// CountByOptionID возвращает количество ответов, в которых выбран вариант
func (r *AnswerRepository) CountByOptionID(ctx context.Context, optionID int) (int, error) {
	var count int
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, "SELECT COUNT(*) FROM user_answers WHERE option_id = $1", optionID).Scan(&count)
	if err != nil {
		return 0, postgres.Classify("AnswerRepository.CountByOptionID", fmt.Errorf("failed to count answers for option: %w", err))
	}
	return count, nil
}

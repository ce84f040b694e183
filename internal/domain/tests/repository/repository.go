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

// TestRepository репозиторий каталога: тесты, вопросы и варианты ответов.
// Для ядра каталог доступен только на чтение.
type TestRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewTestRepository создает новый экземпляр TestRepository
func NewTestRepository(db *pgxpool.Pool, baseLog *logger.Logger) *TestRepository {
	return &TestRepository{db: db, log: baseLog.With("repo", "TestRepository")}
}

// ListTests возвращает все тесты, упорядоченные по ID
func (r *TestRepository) ListTests(ctx context.Context) ([]model.Test, error) {
	const op = "TestRepository.ListTests"

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, "SELECT id, name, description FROM tests ORDER BY id")
	if err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("failed to query tests: %w", err))
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var test model.Test
		if err := rows.Scan(&test.ID, &test.Name, &test.Description); err != nil {
			return nil, postgres.Classify(op, fmt.Errorf("failed to scan test: %w", err))
		}
		tests = append(tests, test)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("failed to iterate over rows: %w", err))
	}

	return tests, nil
}

// GetTestByID получает тест по ID. Если теста нет, возвращает nil.
func (r *TestRepository) GetTestByID(ctx context.Context, testID int) (*model.Test, error) {
	var test model.Test
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, "SELECT id, name, description FROM tests WHERE id = $1", testID).
		Scan(&test.ID, &test.Name, &test.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.Classify("TestRepository.GetTestByID", fmt.Errorf("failed to get test by ID: %w", err))
	}
	return &test, nil
}

// GetQuestionByID получает вопрос по ID. Если вопроса нет, возвращает nil.
func (r *TestRepository) GetQuestionByID(ctx context.Context, questionID int) (*model.Question, error) {
	var question model.Question
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, "SELECT id, test_id, statement FROM questions WHERE id = $1", questionID).
		Scan(&question.ID, &question.TestID, &question.Statement)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.Classify("TestRepository.GetQuestionByID", fmt.Errorf("failed to get question by ID: %w", err))
	}
	return &question, nil
}

// GetOptionByID получает вариант ответа по ID. Если варианта нет, возвращает nil.
func (r *TestRepository) GetOptionByID(ctx context.Context, optionID int) (*model.Option, error) {
	var option model.Option
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, "SELECT id, question_id, option_text, category FROM options WHERE id = $1", optionID).
		Scan(&option.ID, &option.QuestionID, &option.Text, &option.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.Classify("TestRepository.GetOptionByID", fmt.Errorf("failed to get option by ID: %w", err))
	}
	return &option, nil
}

// CountQuestionsByTestID возвращает количество вопросов теста
func (r *TestRepository) CountQuestionsByTestID(ctx context.Context, testID int) (int, error) {
	var count int
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, "SELECT COUNT(*) FROM questions WHERE test_id = $1", testID).Scan(&count)
	if err != nil {
		return 0, postgres.Classify("TestRepository.CountQuestionsByTestID", fmt.Errorf("failed to count questions: %w", err))
	}
	return count, nil
}

// GetQuestionsByTestID получает вопросы теста в порядке возрастания ID
func (r *TestRepository) GetQuestionsByTestID(ctx context.Context, testID int) ([]model.Question, error) {
	const op = "TestRepository.GetQuestionsByTestID"

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, "SELECT id, test_id, statement FROM questions WHERE test_id = $1 ORDER BY id", testID)
	if err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("failed to query questions: %w", err))
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.TestID, &q.Statement); err != nil {
			return nil, postgres.Classify(op, fmt.Errorf("failed to scan question: %w", err))
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("error in rows: %w", err))
	}
	return questions, nil
}

// GetOptionsByQuestionID получает варианты ответа на вопрос в порядке возрастания ID
func (r *TestRepository) GetOptionsByQuestionID(ctx context.Context, questionID int) ([]model.Option, error) {
	const op = "TestRepository.GetOptionsByQuestionID"

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, `
                SELECT id, question_id, option_text, category
                FROM options
                WHERE question_id = $1
                ORDER BY id
        `, questionID)
	if err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("failed to query options: %w", err))
	}
	defer rows.Close()

	var options []model.Option
	for rows.Next() {
		var o model.Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Text, &o.Category); err != nil {
			return nil, postgres.Classify(op, fmt.Errorf("failed to scan option: %w", err))
		}
		options = append(options, o)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("error in rows: %w", err))
	}
	return options, nil
}

// GetCategoriesByOptionIDs возвращает метки направлений для переданных вариантов ответа.
// Отсутствующие варианты в результат не попадают.
func (r *TestRepository) GetCategoriesByOptionIDs(ctx context.Context, optionIDs []int) (map[int]string, error) {
	const op = "TestRepository.GetCategoriesByOptionIDs"

	categories := make(map[int]string, len(optionIDs))
	if len(optionIDs) == 0 {
		return categories, nil
	}

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, "SELECT id, category FROM options WHERE id = ANY($1)", optionIDs)
	if err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("failed to query option categories: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       int
			category string
		)
		if err := rows.Scan(&id, &category); err != nil {
			return nil, postgres.Classify(op, fmt.Errorf("failed to scan option category: %w", err))
		}
		categories[id] = category
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("error in rows: %w", err))
	}
	return categories, nil
}

// Package pgtest поднимает пул к тестовой базе из TEST_DATABASE_URL для интеграционных тестов.
package pgtest

import (
	"context"
	"os"
	"testing"

	"github.com/IT-Nick/vocational-profile/internal/infra/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Catalog идентификаторы созданного в базе теста
type Catalog struct {
	TestID    int
	Questions []int
	// Options[i] варианты вопроса Questions[i] в порядке создания
	Options [][]int
}

// NewPool подключается к TEST_DATABASE_URL, применяет миграции и очищает таблицы.
// Без переменной окружения тест пропускается.
func NewPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, "TRUNCATE user_profiles, user_answers, options, questions, tests RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return pool
}

// SeedCatalog создает тест, в котором i-й вопрос получает варианты с направлениями categories[i]
func SeedCatalog(t testing.TB, pool *pgxpool.Pool, name string, categories ...[]string) Catalog {
	t.Helper()
	ctx := context.Background()

	var c Catalog
	err := pool.QueryRow(ctx, "INSERT INTO tests (name, description) VALUES ($1, '') RETURNING id", name).Scan(&c.TestID)
	require.NoError(t, err)

	for i, questionCategories := range categories {
		var questionID int
		err := pool.QueryRow(ctx, "INSERT INTO questions (test_id, statement) VALUES ($1, $2) RETURNING id",
			c.TestID, name+" question").Scan(&questionID)
		require.NoError(t, err)
		c.Questions = append(c.Questions, questionID)
		c.Options = append(c.Options, nil)

		for _, category := range questionCategories {
			var optionID int
			err := pool.QueryRow(ctx, "INSERT INTO options (question_id, option_text, category) VALUES ($1, $2, $3) RETURNING id",
				questionID, category+" option", category).Scan(&optionID)
			require.NoError(t, err)
			c.Options[i] = append(c.Options[i], optionID)
		}
	}
	return c
}

package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate применяет SQL-миграции по порядку имен файлов. Миграции идемпотентны
// (CREATE ... IF NOT EXISTS), поэтому повторный запуск безопасен.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	const op = "postgres.Migrate"

	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list migrations: %w", op, err)
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := migrations.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read %s: %w", op, name, err)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return nil, Classify(op, fmt.Errorf("failed to apply %s: %w", name, err))
		}
	}
	return names, nil
}

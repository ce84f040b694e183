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

// ProfileRepository репозиторий профилей пользователей по тестам (таблица user_profiles)
type ProfileRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewProfileRepository создает новый экземпляр ProfileRepository
func NewProfileRepository(db *pgxpool.Pool, baseLog *logger.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, log: baseLog.With("repo", "ProfileRepository")}
}

// Upsert создает профиль или перезаписывает направления существующего профиля по ключу (user_id, test_id).
// Операция атомарна и идемпотентна: повторный вызов с теми же данными возвращает тот же ID.
func (r *ProfileRepository) Upsert(ctx context.Context, userID int64, testID int, primary, secondary string) (*model.Profile, error) {
	var p model.Profile
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, `
                INSERT INTO user_profiles (user_id, test_id, primary_category, secondary_category, created_at, updated_at)
                VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
                ON CONFLICT (user_id, test_id) DO UPDATE
                SET primary_category = EXCLUDED.primary_category,
                        secondary_category = EXCLUDED.secondary_category,
                        updated_at = CURRENT_TIMESTAMP
                RETURNING id, user_id, test_id, primary_category, secondary_category, created_at, updated_at
        `, userID, testID, primary, secondary).
		Scan(&p.ID, &p.UserID, &p.TestID, &p.PrimaryCategory, &p.SecondaryCategory, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, postgres.Classify("ProfileRepository.Upsert", fmt.Errorf("failed to upsert profile: %w", err))
	}
	return &p, nil
}

// GetByUserAndTest получает профиль пользователя по тесту. Если профиля нет, возвращает nil.
func (r *ProfileRepository) GetByUserAndTest(ctx context.Context, userID int64, testID int) (*model.Profile, error) {
	var p model.Profile
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, `
                SELECT id, user_id, test_id, primary_category, secondary_category, created_at, updated_at
                FROM user_profiles
                WHERE user_id = $1 AND test_id = $2
        `, userID, testID).
		Scan(&p.ID, &p.UserID, &p.TestID, &p.PrimaryCategory, &p.SecondaryCategory, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.Classify("ProfileRepository.GetByUserAndTest", fmt.Errorf("failed to get profile: %w", err))
	}
	return &p, nil
}

// ListByUserID получает все профили пользователя в порядке возрастания ID теста
func (r *ProfileRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Profile, error) {
	const op = "ProfileRepository.ListByUserID"

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, `
                SELECT id, user_id, test_id, primary_category, secondary_category, created_at, updated_at
                FROM user_profiles
                WHERE user_id = $1
                ORDER BY test_id
        `, userID)
	if err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("failed to query profiles: %w", err))
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.TestID, &p.PrimaryCategory, &p.SecondaryCategory, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, postgres.Classify(op, fmt.Errorf("failed to scan profile: %w", err))
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(op, fmt.Errorf("error in rows: %w", err))
	}
	return profiles, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
)

// ProfileReader методы хранилища профилей для чтения
type ProfileReader interface {
	GetByUserAndTest(ctx context.Context, userID int64, testID int) (*model.Profile, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Profile, error)
}

// ProfileService для чтения вычисленных профилей пользователей
type ProfileService struct {
	profileRepo ProfileReader
}

// NewProfileService создает новый экземпляр ProfileService
func NewProfileService(profileRepo ProfileReader) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfile возвращает профиль пользователя по тесту
func (s *ProfileService) GetProfile(ctx context.Context, userID int64, testID int) (*model.Profile, error) {
	const op = "ProfileService.GetProfile"

	if testID <= 0 {
		return nil, apperr.Newf(apperr.NotFound, op, "test %d not found", testID)
	}

	profile, err := s.profileRepo.GetByUserAndTest(ctx, userID, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, apperr.Newf(apperr.NotFound, op, "user %d has no profile for test %d", userID, testID)
	}
	return profile, nil
}

// ListProfiles возвращает все профили пользователя
func (s *ProfileService) ListProfiles(ctx context.Context, userID int64) ([]model.Profile, error) {
	profiles, err := s.profileRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
)

// TestRepository методы каталога, которые нужны сервису
type TestRepository interface {
	ListTests(ctx context.Context) ([]model.Test, error)
	GetTestByID(ctx context.Context, testID int) (*model.Test, error)
	GetQuestionsByTestID(ctx context.Context, testID int) ([]model.Question, error)
	GetOptionsByQuestionID(ctx context.Context, questionID int) ([]model.Option, error)
}

// TestService для чтения каталога тестов
type TestService struct {
	testRepo TestRepository
}

// NewTestService создает новый экземпляр TestService
func NewTestService(testRepo TestRepository) *TestService {
	return &TestService{testRepo: testRepo}
}

// ListTests получает список всех тестов
func (s *TestService) ListTests(ctx context.Context) ([]model.Test, error) {
	tests, err := s.testRepo.ListTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tests: %w", err)
	}
	return tests, nil
}

// GetTestByID получает тест по ID
func (s *TestService) GetTestByID(ctx context.Context, testID int) (*model.Test, error) {
	test, err := s.testRepo.GetTestByID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	if test == nil {
		return nil, apperr.Newf(apperr.NotFound, "TestService.GetTestByID", "test %d not found", testID)
	}
	return test, nil
}

// GetQuestionsByTestID получает вопросы теста
func (s *TestService) GetQuestionsByTestID(ctx context.Context, testID int) ([]model.Question, error) {
	return s.testRepo.GetQuestionsByTestID(ctx, testID)
}

// GetOptionsByQuestionID получает варианты ответа на вопрос
func (s *TestService) GetOptionsByQuestionID(ctx context.Context, questionID int) ([]model.Option, error) {
	options, err := s.testRepo.GetOptionsByQuestionID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options for question %d: %w", questionID, err)
	}
	return options, nil
}

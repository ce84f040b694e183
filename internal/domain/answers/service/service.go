package service

import (
	"context"
	"fmt"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
)

// Catalog методы каталога тестов, которые нужны сервису ответов
type Catalog interface {
	GetTestByID(ctx context.Context, testID int) (*model.Test, error)
	GetQuestionByID(ctx context.Context, questionID int) (*model.Question, error)
	GetOptionByID(ctx context.Context, optionID int) (*model.Option, error)
	CountQuestionsByTestID(ctx context.Context, testID int) (int, error)
	GetQuestionsByTestID(ctx context.Context, testID int) ([]model.Question, error)
	GetOptionsByQuestionID(ctx context.Context, questionID int) ([]model.Option, error)
}

// AnswerStore хранилище ответов пользователей
type AnswerStore interface {
	Create(ctx context.Context, testID, questionID, optionID int, userID int64) (int, bool, error)
	GetByTestQuestionUser(ctx context.Context, testID, questionID int, userID int64) (*model.Answer, error)
	UpdateOption(ctx context.Context, answerID, optionID int) error
	CountAnsweredQuestions(ctx context.Context, testID int, userID int64) (int, error)
	ListByTestAndUser(ctx context.Context, testID int, userID int64) ([]model.Answer, error)
	ListDetailsByTestAndUser(ctx context.Context, testID int, userID int64) ([]model.AnswerDetails, error)
	DeleteByTestID(ctx context.Context, testID int) (int, error)
	CountByOptionID(ctx context.Context, optionID int) (int, error)
}

// ProfileStore хранилище вычисленных профилей
type ProfileStore interface {
	Upsert(ctx context.Context, userID int64, testID int, primary, secondary string) (*model.Profile, error)
}

// ProfileAggregator вычисляет основное и дополнительное направления по ответам
type ProfileAggregator interface {
	Compute(ctx context.Context, answers []model.Answer) (primary, secondary string, err error)
}

// Transactor выполняет функцию в транзакции, сериализованной по паре (тест, пользователь)
type Transactor interface {
	WithinUserTestLock(ctx context.Context, testID int, userID int64, fn func(ctx context.Context) error) error
}

// Result результат записи или изменения ответа
type Result struct {
	AnswerID        int            `json:"answer_id"`
	ProfileComputed bool           `json:"profile_computed"`
	Profile         *model.Profile `json:"profile,omitempty"`
}

// AnswerService записывает ответы пользователей и пересчитывает профиль,
// когда пользователь ответил на все вопросы теста
type AnswerService struct {
	catalog    Catalog
	answers    AnswerStore
	profiles   ProfileStore
	aggregator ProfileAggregator
	tx         Transactor
	log        *logger.Logger
}

// NewAnswerService создает новый экземпляр AnswerService
func NewAnswerService(catalog Catalog, answers AnswerStore, profiles ProfileStore, aggregator ProfileAggregator, tx Transactor, baseLog *logger.Logger) *AnswerService {
	return &AnswerService{
		catalog:    catalog,
		answers:    answers,
		profiles:   profiles,
		aggregator: aggregator,
		tx:         tx,
		log:        baseLog.With("service", "AnswerService"),
	}
}

// SubmitAnswer записывает ответ пользователя. Если после записи пользователь ответил
// на все вопросы теста, профиль вычисляется и сохраняется.
func (s *AnswerService) SubmitAnswer(ctx context.Context, testID, questionID, optionID int, caller model.Caller) (*Result, error) {
	const op = "AnswerService.SubmitAnswer"

	if err := s.validateRefs(ctx, op, testID, questionID, optionID); err != nil {
		return nil, err
	}

	var (
		answerID int
		complete bool
	)
	err := s.tx.WithinUserTestLock(ctx, testID, caller.UserID, func(ctx context.Context) error {
		var err error
		answerID, err = s.recordLocked(ctx, op, testID, questionID, optionID, caller.UserID)
		if err != nil {
			return err
		}
		complete, err = s.isCompleteLocked(ctx, testID, caller.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, op, answerID, complete, testID, caller.UserID)
}

// EditAnswer меняет выбранный вариант в существующем ответе. Если набор ответов
// полный, профиль пересчитывается и перезаписывается.
func (s *AnswerService) EditAnswer(ctx context.Context, testID, questionID, optionID int, caller model.Caller) (*Result, error) {
	const op = "AnswerService.EditAnswer"

	if err := s.validateRefs(ctx, op, testID, questionID, optionID); err != nil {
		return nil, err
	}

	var (
		answerID int
		complete bool
	)
	err := s.tx.WithinUserTestLock(ctx, testID, caller.UserID, func(ctx context.Context) error {
		var err error
		answerID, err = s.updateLocked(ctx, op, testID, questionID, optionID, caller.UserID)
		if err != nil {
			return err
		}
		complete, err = s.isCompleteLocked(ctx, testID, caller.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, op, answerID, complete, testID, caller.UserID)
}

// AdminDeleteAnswersForTest удаляет ответы всех пользователей по тесту.
// Доступно только администратору. Профили не удаляются.
func (s *AnswerService) AdminDeleteAnswersForTest(ctx context.Context, testID int, caller model.Caller) (int, error) {
	const op = "AnswerService.AdminDeleteAnswersForTest"

	if !caller.IsAdmin() {
		return 0, apperr.Newf(apperr.Forbidden, op, "user %d with role %q cannot delete answers", caller.UserID, caller.Role)
	}

	deleted, err := s.DeleteAllForTest(ctx, testID)
	if err != nil {
		return 0, err
	}

	s.log.Info("answers deleted by admin, profiles kept",
		"test_id", testID, "admin_id", caller.UserID, "deleted", deleted)
	return deleted, nil
}

// RecordAnswer проверяет ссылки и записывает ответ без вычисления профиля
func (s *AnswerService) RecordAnswer(ctx context.Context, testID, questionID, optionID int, userID int64) (int, error) {
	const op = "AnswerService.RecordAnswer"

	if err := s.validateRefs(ctx, op, testID, questionID, optionID); err != nil {
		return 0, err
	}

	var answerID int
	err := s.tx.WithinUserTestLock(ctx, testID, userID, func(ctx context.Context) error {
		var err error
		answerID, err = s.recordLocked(ctx, op, testID, questionID, optionID, userID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return answerID, nil
}

// UpdateAnswer меняет выбранный вариант без вычисления профиля
func (s *AnswerService) UpdateAnswer(ctx context.Context, testID, questionID int, userID int64, newOptionID int) error {
	const op = "AnswerService.UpdateAnswer"

	if err := s.validateRefs(ctx, op, testID, questionID, newOptionID); err != nil {
		return err
	}

	return s.tx.WithinUserTestLock(ctx, testID, userID, func(ctx context.Context) error {
		_, err := s.updateLocked(ctx, op, testID, questionID, newOptionID, userID)
		return err
	})
}

// CountAnswered возвращает количество вопросов теста, на которые ответил пользователь
func (s *AnswerService) CountAnswered(ctx context.Context, testID int, userID int64) (int, error) {
	count, err := s.answers.CountAnsweredQuestions(ctx, testID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return count, nil
}

// ListAnswers возвращает ответы пользователя по тесту в порядке вопросов
func (s *AnswerService) ListAnswers(ctx context.Context, testID int, userID int64) ([]model.Answer, error) {
	answers, err := s.answers.ListByTestAndUser(ctx, testID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, nil
}

// ListAnswerDetails возвращает ответы пользователя с текстом вопросов и вариантов
func (s *AnswerService) ListAnswerDetails(ctx context.Context, testID int, userID int64) ([]model.AnswerDetails, error) {
	const op = "AnswerService.ListAnswerDetails"

	details, err := s.answers.ListDetailsByTestAndUser(ctx, testID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answer details: %w", err)
	}
	if len(details) == 0 {
		return nil, apperr.Newf(apperr.NotFound, op, "user %d has no answers for test %d", userID, testID)
	}
	return details, nil
}

// DeleteAllForTest удаляет все ответы по тесту и возвращает их количество
func (s *AnswerService) DeleteAllForTest(ctx context.Context, testID int) (int, error) {
	const op = "AnswerService.DeleteAllForTest"

	if testID <= 0 {
		return 0, apperr.Newf(apperr.NotFound, op, "test %d not found", testID)
	}

	deleted, err := s.answers.DeleteByTestID(ctx, testID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete answers: %w", err)
	}
	if deleted == 0 {
		return 0, apperr.Newf(apperr.NotFound, op, "no answers for test %d", testID)
	}
	return deleted, nil
}

// CountAnswersForOption возвращает количество ответов с выбранным вариантом
func (s *AnswerService) CountAnswersForOption(ctx context.Context, optionID int) (int, error) {
	count, err := s.answers.CountByOptionID(ctx, optionID)
	if err != nil {
		return 0, fmt.Errorf("failed to count answers for option: %w", err)
	}
	return count, nil
}

// IsComplete сообщает, ответил ли пользователь на все вопросы теста.
// Тест без вопросов никогда не считается пройденным.
func (s *AnswerService) IsComplete(ctx context.Context, testID int, userID int64) (bool, error) {
	return s.isCompleteLocked(ctx, testID, userID)
}

// QuestionStep очередной вопрос теста для пользователя
type QuestionStep struct {
	Test     model.Test
	Question model.Question
	Options  []model.Option
	// Number порядковый номер вопроса в тесте, начиная с 1
	Number int
	Total  int
}

// NextQuestion возвращает первый вопрос теста, на который пользователь еще не ответил.
// Если ответы есть на все вопросы, возвращает nil.
func (s *AnswerService) NextQuestion(ctx context.Context, testID int, userID int64) (*QuestionStep, error) {
	const op = "AnswerService.NextQuestion"

	test, err := s.catalog.GetTestByID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	if test == nil {
		return nil, apperr.Newf(apperr.NotFound, op, "test %d not found", testID)
	}

	questions, err := s.catalog.GetQuestionsByTestID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	answers, err := s.answers.ListByTestAndUser(ctx, testID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	answered := make(map[int]struct{}, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = struct{}{}
	}

	for i, question := range questions {
		if _, ok := answered[question.ID]; ok {
			continue
		}
		options, err := s.catalog.GetOptionsByQuestionID(ctx, question.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get options: %w", err)
		}
		return &QuestionStep{
			Test:     *test,
			Question: question,
			Options:  options,
			Number:   i + 1,
			Total:    len(questions),
		}, nil
	}
	return nil, nil
}

// IsAnswered сообщает, ответил ли пользователь на вопрос теста
func (s *AnswerService) IsAnswered(ctx context.Context, testID, questionID int, userID int64) (bool, error) {
	existing, err := s.answers.GetByTestQuestionUser(ctx, testID, questionID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get answer: %w", err)
	}
	return existing != nil, nil
}

// validateRefs проверяет существование теста, вопроса и варианта и их связь между собой
func (s *AnswerService) validateRefs(ctx context.Context, op string, testID, questionID, optionID int) error {
	if testID <= 0 || questionID <= 0 || optionID <= 0 {
		return apperr.Newf(apperr.NotFound, op, "ids must be positive: test %d, question %d, option %d", testID, questionID, optionID)
	}

	test, err := s.catalog.GetTestByID(ctx, testID)
	if err != nil {
		return fmt.Errorf("failed to get test: %w", err)
	}
	if test == nil {
		return apperr.Newf(apperr.NotFound, op, "test %d not found", testID)
	}

	question, err := s.catalog.GetQuestionByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}
	if question == nil {
		return apperr.Newf(apperr.NotFound, op, "question %d not found", questionID)
	}
	if question.TestID != testID {
		return apperr.Newf(apperr.Inconsistent, op, "question %d does not belong to test %d", questionID, testID)
	}

	option, err := s.catalog.GetOptionByID(ctx, optionID)
	if err != nil {
		return fmt.Errorf("failed to get option: %w", err)
	}
	if option == nil {
		return apperr.Newf(apperr.NotFound, op, "option %d not found", optionID)
	}
	if option.QuestionID != questionID {
		return apperr.Newf(apperr.Inconsistent, op, "option %d does not belong to question %d", optionID, questionID)
	}
	return nil
}

// recordLocked создает ответ. Повторная запись того же варианта возвращает
// существующий ответ, другой вариант для уже отвеченного вопроса считается ошибкой.
func (s *AnswerService) recordLocked(ctx context.Context, op string, testID, questionID, optionID int, userID int64) (int, error) {
	answerID, created, err := s.answers.Create(ctx, testID, questionID, optionID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to record answer: %w", err)
	}
	if created {
		return answerID, nil
	}

	existing, err := s.answers.GetByTestQuestionUser(ctx, testID, questionID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get existing answer: %w", err)
	}
	if existing == nil {
		return 0, fmt.Errorf("%s: answer for question %d conflicted but was not found", op, questionID)
	}
	if existing.OptionID != optionID {
		return 0, apperr.Newf(apperr.Inconsistent, op,
			"question %d already answered with option %d, use edit to change it", questionID, existing.OptionID)
	}

	s.log.Debug("answer already recorded", "answer_id", existing.ID, "test_id", testID, "user_id", userID)
	return existing.ID, nil
}

func (s *AnswerService) updateLocked(ctx context.Context, op string, testID, questionID, optionID int, userID int64) (int, error) {
	existing, err := s.answers.GetByTestQuestionUser(ctx, testID, questionID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get answer: %w", err)
	}
	if existing == nil {
		return 0, apperr.Newf(apperr.NotFound, op, "user %d has no answer for question %d of test %d", userID, questionID, testID)
	}

	if existing.OptionID == optionID {
		return existing.ID, nil
	}

	if err := s.answers.UpdateOption(ctx, existing.ID, optionID); err != nil {
		return 0, fmt.Errorf("failed to update answer: %w", err)
	}
	return existing.ID, nil
}

func (s *AnswerService) isCompleteLocked(ctx context.Context, testID int, userID int64) (bool, error) {
	total, err := s.catalog.CountQuestionsByTestID(ctx, testID)
	if err != nil {
		return false, fmt.Errorf("failed to count questions: %w", err)
	}
	if total == 0 {
		return false, nil
	}

	answered, err := s.answers.CountAnsweredQuestions(ctx, testID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to count answers: %w", err)
	}
	return answered == total, nil
}

// finish вычисляет профиль во второй транзакции, если набор ответов полный.
// Ответ уже зафиксирован и остается записанным, даже если вычисление не удалось.
func (s *AnswerService) finish(ctx context.Context, op string, answerID int, complete bool, testID int, userID int64) (*Result, error) {
	result := &Result{AnswerID: answerID}
	if !complete {
		return result, nil
	}

	err := s.tx.WithinUserTestLock(ctx, testID, userID, func(ctx context.Context) error {
		// Набор ответов перечитывается под блокировкой: между транзакциями его могли изменить
		stillComplete, err := s.isCompleteLocked(ctx, testID, userID)
		if err != nil {
			return err
		}
		if !stillComplete {
			return nil
		}

		answers, err := s.answers.ListByTestAndUser(ctx, testID, userID)
		if err != nil {
			return fmt.Errorf("failed to list answers: %w", err)
		}

		primary, secondary, err := s.aggregator.Compute(ctx, answers)
		if err != nil {
			return fmt.Errorf("failed to compute profile: %w", err)
		}

		profile, err := s.profiles.Upsert(ctx, userID, testID, primary, secondary)
		if err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		result.ProfileComputed = true
		result.Profile = profile
		return nil
	})
	if err != nil {
		s.log.Error("profile aggregation failed, answer kept",
			"op", op, "answer_id", answerID, "test_id", testID, "user_id", userID, "error", err)
		return nil, err
	}

	if result.ProfileComputed {
		s.log.Info("profile computed",
			"test_id", testID, "user_id", userID,
			"primary", result.Profile.PrimaryCategory, "secondary", result.Profile.SecondaryCategory)
	}
	return result, nil
}

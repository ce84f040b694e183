package service

import (
	"context"
	"sort"
	"sync"

	"github.com/IT-Nick/vocational-profile/internal/domain/model"
)

type fakeCatalog struct {
	tests     map[int]model.Test
	questions map[int]model.Question
	options   map[int]model.Option
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		tests:     make(map[int]model.Test),
		questions: make(map[int]model.Question),
		options:   make(map[int]model.Option),
	}
}

func (c *fakeCatalog) addTest(id int) {
	c.tests[id] = model.Test{ID: id, Name: "test"}
}

func (c *fakeCatalog) addQuestion(id, testID int) {
	c.questions[id] = model.Question{ID: id, TestID: testID, Statement: "question"}
}

func (c *fakeCatalog) addOption(id, questionID int, category string) {
	c.options[id] = model.Option{ID: id, QuestionID: questionID, Text: category, Category: category}
}

func (c *fakeCatalog) GetTestByID(_ context.Context, testID int) (*model.Test, error) {
	if t, ok := c.tests[testID]; ok {
		return &t, nil
	}
	return nil, nil
}

func (c *fakeCatalog) GetQuestionByID(_ context.Context, questionID int) (*model.Question, error) {
	if q, ok := c.questions[questionID]; ok {
		return &q, nil
	}
	return nil, nil
}

func (c *fakeCatalog) GetOptionByID(_ context.Context, optionID int) (*model.Option, error) {
	if o, ok := c.options[optionID]; ok {
		return &o, nil
	}
	return nil, nil
}

func (c *fakeCatalog) CountQuestionsByTestID(ctx context.Context, testID int) (int, error) {
	questions, _ := c.GetQuestionsByTestID(ctx, testID)
	return len(questions), nil
}

func (c *fakeCatalog) GetQuestionsByTestID(_ context.Context, testID int) ([]model.Question, error) {
	var questions []model.Question
	for _, q := range c.questions {
		if q.TestID == testID {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (c *fakeCatalog) GetOptionsByQuestionID(_ context.Context, questionID int) ([]model.Option, error) {
	var options []model.Option
	for _, o := range c.options {
		if o.QuestionID == questionID {
			options = append(options, o)
		}
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })
	return options, nil
}

func (c *fakeCatalog) GetCategoriesByOptionIDs(_ context.Context, optionIDs []int) (map[int]string, error) {
	out := make(map[int]string, len(optionIDs))
	for _, id := range optionIDs {
		if o, ok := c.options[id]; ok {
			out[id] = o.Category
		}
	}
	return out, nil
}

type answerKey struct {
	testID     int
	questionID int
	userID     int64
}

type fakeAnswerStore struct {
	mu      sync.Mutex
	nextID  int
	answers map[answerKey]model.Answer
	creates int
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{answers: make(map[answerKey]model.Answer)}
}

func (s *fakeAnswerStore) Create(_ context.Context, testID, questionID, optionID int, userID int64) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := answerKey{testID, questionID, userID}
	if _, ok := s.answers[key]; ok {
		return 0, false, nil
	}
	s.nextID++
	s.creates++
	s.answers[key] = model.Answer{ID: s.nextID, TestID: testID, QuestionID: questionID, OptionID: optionID, UserID: userID}
	return s.nextID, true, nil
}

func (s *fakeAnswerStore) GetByTestQuestionUser(_ context.Context, testID, questionID int, userID int64) (*model.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.answers[answerKey{testID, questionID, userID}]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *fakeAnswerStore) UpdateOption(_ context.Context, answerID, optionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, a := range s.answers {
		if a.ID == answerID {
			a.OptionID = optionID
			s.answers[k] = a
			return nil
		}
	}
	return nil
}

func (s *fakeAnswerStore) CountAnsweredQuestions(ctx context.Context, testID int, userID int64) (int, error) {
	answers, _ := s.ListByTestAndUser(ctx, testID, userID)
	return len(answers), nil
}

func (s *fakeAnswerStore) ListByTestAndUser(_ context.Context, testID int, userID int64) ([]model.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var answers []model.Answer
	for k, a := range s.answers {
		if k.testID == testID && k.userID == userID {
			answers = append(answers, a)
		}
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].QuestionID < answers[j].QuestionID })
	return answers, nil
}

func (s *fakeAnswerStore) ListDetailsByTestAndUser(ctx context.Context, testID int, userID int64) ([]model.AnswerDetails, error) {
	answers, _ := s.ListByTestAndUser(ctx, testID, userID)
	var details []model.AnswerDetails
	for _, a := range answers {
		details = append(details, model.AnswerDetails{ID: a.ID, QuestionID: a.QuestionID, OptionID: a.OptionID})
	}
	return details, nil
}

func (s *fakeAnswerStore) DeleteByTestID(_ context.Context, testID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for k := range s.answers {
		if k.testID == testID {
			delete(s.answers, k)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakeAnswerStore) CountByOptionID(_ context.Context, optionID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, a := range s.answers {
		if a.OptionID == optionID {
			count++
		}
	}
	return count, nil
}

type profileKey struct {
	userID int64
	testID int
}

type fakeProfileStore struct {
	mu       sync.Mutex
	nextID   int
	profiles map[profileKey]model.Profile
	upserts  int
	err      error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[profileKey]model.Profile)}
}

func (s *fakeProfileStore) Upsert(_ context.Context, userID int64, testID int, primary, secondary string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	s.upserts++

	key := profileKey{userID, testID}
	p, ok := s.profiles[key]
	if !ok {
		s.nextID++
		p = model.Profile{ID: s.nextID, UserID: userID, TestID: testID}
	}
	p.PrimaryCategory = primary
	p.SecondaryCategory = secondary
	s.profiles[key] = p
	return &p, nil
}

func (s *fakeProfileStore) get(userID int64, testID int) (model.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[profileKey{userID, testID}]
	return p, ok
}

// fakeTransactor сериализует все вызовы одним мьютексом
type fakeTransactor struct {
	mu    sync.Mutex
	calls int
}

func (t *fakeTransactor) WithinUserTestLock(ctx context.Context, _ int, _ int64, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return fn(ctx)
}

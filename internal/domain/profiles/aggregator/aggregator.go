package aggregator

import (
	"context"
	"fmt"
	"sort"

	"github.com/IT-Nick/vocational-profile/internal/domain/apperr"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
)

// CategoryResolver возвращает направления вариантов ответа по их ID
type CategoryResolver interface {
	GetCategoriesByOptionIDs(ctx context.Context, optionIDs []int) (map[int]string, error)
}

// Aggregator вычисляет профиль пользователя по набору его ответов
type Aggregator struct {
	resolver CategoryResolver
}

// NewAggregator создает новый экземпляр Aggregator
func NewAggregator(resolver CategoryResolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// Compute сопоставляет каждому ответу направление выбранного варианта и возвращает
// основное и дополнительное направления. Порядок ответов важен для разрешения ничьих.
func (a *Aggregator) Compute(ctx context.Context, answers []model.Answer) (primary, secondary string, err error) {
	const op = "Aggregator.Compute"

	if len(answers) == 0 {
		return "", "", apperr.Newf(apperr.NoAnswers, op, "no answers to aggregate")
	}

	optionIDs := make([]int, 0, len(answers))
	for _, ans := range answers {
		optionIDs = append(optionIDs, ans.OptionID)
	}

	categories, err := a.resolver.GetCategoriesByOptionIDs(ctx, optionIDs)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve categories: %w", err)
	}

	labels := make([]string, 0, len(answers))
	for _, ans := range answers {
		category, ok := categories[ans.OptionID]
		if !ok {
			return "", "", apperr.Newf(apperr.NotFound, op, "option %d of answer %d not found", ans.OptionID, ans.ID)
		}
		labels = append(labels, category)
	}

	return Rank(labels)
}

type tally struct {
	label string
	count int
	first int
}

// Rank возвращает самую частую метку и следующую за ней. При равном количестве
// выше стоит метка, встретившаяся раньше. Если метка одна, secondary совпадает с primary.
func Rank(labels []string) (primary, secondary string, err error) {
	if len(labels) == 0 {
		return "", "", apperr.Newf(apperr.NoAnswers, "Rank", "no labels to rank")
	}

	index := make(map[string]int, len(labels))
	var tallies []tally
	for i, label := range labels {
		if j, ok := index[label]; ok {
			tallies[j].count++
			continue
		}
		index[label] = len(tallies)
		tallies = append(tallies, tally{label: label, count: 1, first: i})
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].count != tallies[j].count {
			return tallies[i].count > tallies[j].count
		}
		return tallies[i].first < tallies[j].first
	})

	primary = tallies[0].label
	secondary = primary
	if len(tallies) > 1 {
		secondary = tallies[1].label
	}
	return primary, secondary, nil
}

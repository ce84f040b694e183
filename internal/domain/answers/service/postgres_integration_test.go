package service

import (
	"context"
	"sync"
	"testing"

	answersRepo "github.com/IT-Nick/vocational-profile/internal/domain/answers/repository"
	"github.com/IT-Nick/vocational-profile/internal/domain/model"
	"github.com/IT-Nick/vocational-profile/internal/domain/profiles/aggregator"
	profilesRepo "github.com/IT-Nick/vocational-profile/internal/domain/profiles/repository"
	testsRepo "github.com/IT-Nick/vocational-profile/internal/domain/tests/repository"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"github.com/IT-Nick/vocational-profile/internal/infra/postgres"
	"github.com/IT-Nick/vocational-profile/internal/infra/postgres/pgtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCompletionFlow(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	log := logger.NewNop()

	catalog := pgtest.SeedCatalog(t, pool, "vocational", []string{"Eng"}, []string{"Eng", "Art"}, []string{"Art"})
	q, o := catalog.Questions, catalog.Options

	tests := testsRepo.NewTestRepository(pool, log)
	answers := answersRepo.NewAnswerRepository(pool, log)
	profiles := profilesRepo.NewProfileRepository(pool, log)
	svc := NewAnswerService(tests, answers, profiles, aggregator.NewAggregator(tests), postgres.NewTransactor(pool), log)

	caller := model.Caller{UserID: 900000000001, Role: model.RoleCommon}

	res, err := svc.SubmitAnswer(ctx, catalog.TestID, q[0], o[0][0], caller)
	require.NoError(t, err)
	assert.False(t, res.ProfileComputed)

	res, err = svc.SubmitAnswer(ctx, catalog.TestID, q[1], o[1][0], caller)
	require.NoError(t, err)
	assert.False(t, res.ProfileComputed)

	retry, err := svc.SubmitAnswer(ctx, catalog.TestID, q[1], o[1][0], caller)
	require.NoError(t, err)
	assert.Equal(t, res.AnswerID, retry.AnswerID)

	res, err = svc.SubmitAnswer(ctx, catalog.TestID, q[2], o[2][0], caller)
	require.NoError(t, err)
	require.True(t, res.ProfileComputed)
	assert.Equal(t, "Eng", res.Profile.PrimaryCategory)
	assert.Equal(t, "Art", res.Profile.SecondaryCategory)
	profileID := res.Profile.ID

	res, err = svc.EditAnswer(ctx, catalog.TestID, q[1], o[1][1], caller)
	require.NoError(t, err)
	require.True(t, res.ProfileComputed)
	assert.Equal(t, profileID, res.Profile.ID)
	assert.Equal(t, "Art", res.Profile.PrimaryCategory)
	assert.Equal(t, "Eng", res.Profile.SecondaryCategory)

	details, err := svc.ListAnswerDetails(ctx, catalog.TestID, caller.UserID)
	require.NoError(t, err)
	require.Len(t, details, 3)
	assert.Equal(t, "Art option", details[1].OptionText)

	count, err := svc.CountAnswersForOption(ctx, o[1][1])
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deleted, err := svc.AdminDeleteAnswersForTest(ctx, catalog.TestID, model.Caller{UserID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	stale, err := profiles.GetByUserAndTest(ctx, caller.UserID, catalog.TestID)
	require.NoError(t, err)
	require.NotNil(t, stale)
	assert.Equal(t, "Art", stale.PrimaryCategory)
}

func TestPostgresConcurrentSubmissions(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	log := logger.NewNop()

	catalog := pgtest.SeedCatalog(t, pool, "concurrent", []string{"Eng"}, []string{"Art"}, []string{"Eng"}, []string{"Law"})

	tests := testsRepo.NewTestRepository(pool, log)
	profiles := profilesRepo.NewProfileRepository(pool, log)
	svc := NewAnswerService(tests, answersRepo.NewAnswerRepository(pool, log), profiles,
		aggregator.NewAggregator(tests), postgres.NewTransactor(pool), log)

	caller := model.Caller{UserID: 42, Role: model.RoleCommon}

	var wg sync.WaitGroup
	errs := make(chan error, len(catalog.Questions)*2)
	for i := range catalog.Questions {
		for n := 0; n < 2; n++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := svc.SubmitAnswer(ctx, catalog.TestID, catalog.Questions[i], catalog.Options[i][0], caller)
				errs <- err
			}(i)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	count, err := svc.CountAnswered(ctx, catalog.TestID, caller.UserID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	list, err := profiles.ListByUserID(ctx, caller.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Eng", list[0].PrimaryCategory)
	assert.Equal(t, "Art", list[0].SecondaryCategory)
}

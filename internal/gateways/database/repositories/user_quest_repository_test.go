package repositories_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/embark-app/embark/internal/gateways/database/repositories"
	"github.com/embark-app/embark/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttempt(userID uuid.UUID, quest *models.Quest, at time.Time) *models.UserQuest {
	return &models.UserQuest{
		ID:         uuid.New(),
		UserID:     userID,
		QuestID:    quest.ID,
		StartedAt:  at,
		DeadlineAt: at.Add(quest.TimeLimit()),
	}
}

func TestUserQuestRepository_InsertIfBelowLimit(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewUserQuestRepository(db)
	user := testutil.CreateUser(t, db, "ivo")

	for i := 0; i < 4; i++ {
		quest := testutil.CreateQuest(t, db, "quest", 1)
		ok, err := repo.InsertIfBelowLimit(ctx, newAttempt(user.ID, quest, testutil.DefaultStart), 4)
		require.NoError(t, err)
		require.True(t, ok)
	}

	extra := testutil.CreateQuest(t, db, "extra", 1)
	ok, err := repo.InsertIfBelowLimit(ctx, newAttempt(user.ID, extra, testutil.DefaultStart), 4)
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := repo.CountActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// other users are unaffected
	other := testutil.CreateUser(t, db, "jo")
	ok, err = repo.InsertIfBelowLimit(ctx, newAttempt(other.ID, extra, testutil.DefaultStart), 4)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserQuestRepository_InsertIfBelowLimitConcurrent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewUserQuestRepository(db)
	user := testutil.CreateUser(t, db, "kai")

	quests := make([]*models.Quest, 10)
	for i := range quests {
		quests[i] = testutil.CreateQuest(t, db, "race", 1)
	}

	var wg sync.WaitGroup
	for _, quest := range quests {
		wg.Add(1)
		go func(q *models.Quest) {
			defer wg.Done()
			_, err := repo.InsertIfBelowLimit(ctx, newAttempt(user.ID, q, testutil.DefaultStart), 4)
			assert.NoError(t, err)
		}(quest)
	}
	wg.Wait()

	count, err := repo.CountActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestUserQuestRepository_CompleteAndHistory(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewUserQuestRepository(db)
	user := testutil.CreateUser(t, db, "lev")
	first := testutil.CreateQuest(t, db, "first", 2)
	second := testutil.CreateQuest(t, db, "second", 3)

	a := newAttempt(user.ID, first, testutil.DefaultStart)
	b := newAttempt(user.ID, second, testutil.DefaultStart)
	for _, uq := range []*models.UserQuest{a, b} {
		ok, err := repo.InsertIfBelowLimit(ctx, uq, 4)
		require.NoError(t, err)
		require.True(t, ok)
	}

	active, err := repo.GetActive(ctx, user.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, active.Quest)
	assert.Equal(t, "first", active.Quest.Title)

	_, err = repo.GetActive(ctx, uuid.New(), a.ID)
	assert.True(t, apperr.IsNotFoundEntity(err, apperr.EntityUserQuest))

	ok, err := repo.MarkCompleted(ctx, a.ID, testutil.DefaultStart.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.MarkCompleted(ctx, a.ID, testutil.DefaultStart.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "completing twice must be a no-op")

	ok, err = repo.MarkCompleted(ctx, b.ID, testutil.DefaultStart.Add(3*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	history, err := repo.History(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, b.ID, history[0].ID)
	assert.Equal(t, a.ID, history[1].ID)
	assert.False(t, history[0].IsActive)
	require.NotNil(t, history[0].Quest)
	assert.Equal(t, "second", history[0].Quest.Title)

	limited, err := repo.History(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	done, err := repo.HasCompleted(ctx, user.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, done)

	tierDone, err := repo.HasCompletedTier(ctx, user.ID, 3)
	require.NoError(t, err)
	assert.True(t, tierDone)
	tierDone, err = repo.HasCompletedTier(ctx, user.ID, 5)
	require.NoError(t, err)
	assert.False(t, tierDone)

	ids, err := repo.CompletedQuestIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)

	count, err := repo.CountByQuest(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserQuestRepository_DeleteActive(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewUserQuestRepository(db)
	user := testutil.CreateUser(t, db, "mia")
	quest := testutil.CreateQuest(t, db, "walk", 1)

	done := testutil.CompletedAttempt(t, db, user.ID, quest, testutil.DefaultStart)
	ok, err := repo.DeleteActive(ctx, user.ID, done.ID)
	require.NoError(t, err)
	assert.False(t, ok, "completed attempts are never deleted")

	uq := newAttempt(user.ID, quest, testutil.DefaultStart)
	_, err = repo.InsertIfBelowLimit(ctx, uq, 4)
	require.NoError(t, err)

	ok, err = repo.DeleteActive(ctx, uuid.New(), uq.ID)
	require.NoError(t, err)
	assert.False(t, ok, "another user's attempt must not be deleted")

	ok, err = repo.DeleteActive(ctx, user.ID, uq.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	active, err := repo.ListActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

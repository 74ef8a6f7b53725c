package quests

import (
	"context"
	"testing"
	"time"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/gateways/database/repositories"
	"github.com/embark-app/embark/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) (*Catalog, *testutil.Clock, *engineFixture) {
	t.Helper()
	f := newEngineFixture(t)
	return NewCatalog(repositories.NewQuestRepository(f.db), f.attempts, f.clock), f.clock, f
}

func TestCatalog_CreateValidation(t *testing.T) {
	c, _, _ := newCatalog(t)
	valid := QuestInput{Title: "Walk", Tier: 1, GloryReward: 10, XPReward: 10}

	tests := []struct {
		name   string
		modify func(*QuestInput)
	}{
		{"blank title", func(in *QuestInput) { in.Title = "  " }},
		{"tier too low", func(in *QuestInput) { in.Tier = 0 }},
		{"tier too high", func(in *QuestInput) { in.Tier = config.MaxTier + 1 }},
		{"negative glory", func(in *QuestInput) { in.GloryReward = -1 }},
		{"negative xp", func(in *QuestInput) { in.XPReward = -5 }},
		{"negative time limit", func(in *QuestInput) { in.TimeLimitHours = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)
			_, err := c.Create(context.Background(), in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestCatalog_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	c, clk, _ := newCatalog(t)

	quest, err := c.Create(ctx, QuestInput{Title: " Stretch ", Tier: 2, GloryReward: 50, XPReward: 20, Topic: "fitness"})
	require.NoError(t, err)
	assert.Equal(t, "Stretch", quest.Title)
	assert.Equal(t, config.DefaultQuestTimeLimitHours, quest.TimeLimitHours)

	clk.Advance(time.Hour)
	updated, err := c.Update(ctx, quest.ID, QuestInput{Title: "Deep Stretch", Tier: 3, GloryReward: 80, XPReward: 40, TimeLimitHours: 12})
	require.NoError(t, err)
	assert.Equal(t, "Deep Stretch", updated.Title)
	assert.Empty(t, updated.Topic)
	assert.Equal(t, testutil.DefaultStart.Add(time.Hour), updated.UpdatedAt)

	got, err := c.Get(ctx, quest.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Tier)
	assert.Equal(t, 12, got.TimeLimitHours)

	_, err = c.Update(ctx, uuid.New(), QuestInput{Title: "x", Tier: 1})
	assert.True(t, apperr.IsNotFoundEntity(err, apperr.EntityQuest))
}

func TestCatalog_LongTimeLimit(t *testing.T) {
	ctx := context.Background()
	c, _, f := newCatalog(t)

	quest, err := c.Create(ctx, QuestInput{Title: "Marathon", Tier: 1, TimeLimitHours: 200})
	require.NoError(t, err)
	assert.Equal(t, 200, quest.TimeLimitHours)

	user := testutil.CreateUser(t, f.db, "ada")
	uq, err := f.engine.Start(ctx, user.ID, quest.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.DefaultStart.Add(200*time.Hour), uq.DeadlineAt)

	updated, err := c.Update(ctx, quest.ID, QuestInput{Title: "Ultra", Tier: 1, TimeLimitHours: 24 * 30})
	require.NoError(t, err)
	assert.Equal(t, 720, updated.TimeLimitHours)
}

func TestCatalog_ListByTier(t *testing.T) {
	ctx := context.Background()
	c, _, f := newCatalog(t)
	testutil.CreateQuest(t, f.db, "a", 1)
	testutil.CreateQuest(t, f.db, "b", 2)
	testutil.CreateQuest(t, f.db, "c", 2)

	all, err := c.List(ctx, 0, 100, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	tier2, err := c.List(ctx, 2, 100, 0)
	require.NoError(t, err)
	assert.Len(t, tier2, 2)

	_, err = c.List(ctx, 9, 100, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCatalog_Delete(t *testing.T) {
	ctx := context.Background()
	c, _, f := newCatalog(t)
	user := testutil.CreateUser(t, f.db, "ada")
	unused := testutil.CreateQuest(t, f.db, "unused", 1)
	used := testutil.CreateQuest(t, f.db, "used", 1)
	testutil.CompletedAttempt(t, f.db, user.ID, used, testutil.DefaultStart)

	require.NoError(t, c.Delete(ctx, unused.ID))
	_, err := c.Get(ctx, unused.ID)
	assert.True(t, apperr.IsNotFoundEntity(err, apperr.EntityQuest))

	assert.ErrorIs(t, c.Delete(ctx, used.ID), apperr.ErrValidation)
	assert.ErrorIs(t, c.Delete(ctx, uuid.New()), apperr.ErrNotFound)
}

func TestCatalog_Search(t *testing.T) {
	ctx := context.Background()
	c, _, f := newCatalog(t)
	testutil.CreateQuest(t, f.db, "Morning Run", 1)
	testutil.CreateQuest(t, f.db, "Meditate", 1)
	testutil.CreateQuest(t, f.db, "Marathon", 6)

	results, err := c.Search(ctx, "run", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Morning Run", results[0].Title)

	results, err = c.Search(ctx, "m", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = c.Search(ctx, "zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = c.Search(ctx, " ", 10)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

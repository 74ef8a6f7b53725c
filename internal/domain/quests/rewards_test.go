package quests

import (
	"context"
	"errors"
	"testing"

	"github.com/embark-app/embark/internal/domain/achievements"
	"github.com/embark-app/embark/internal/domain/items"
	"github.com/embark-app/embark/internal/domain/quests/mock"
	"github.com/embark-app/embark/internal/domain/users"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/embark-app/embark/internal/gateways/database/repositories"
	"github.com/embark-app/embark/internal/locks"
	"github.com/embark-app/embark/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRewarder(t *testing.T, f *engineFixture) *Rewarder {
	t.Helper()
	userRepo := repositories.NewUserRepository(f.db)
	itemRepo := repositories.NewItemRepository(f.db)
	itemLocks, err := locks.NewKeyed(64)
	require.NoError(t, err)
	return NewRewarder(
		f.engine,
		users.NewLedger(userRepo, f.clock),
		items.NewService(itemRepo, userRepo, itemLocks, f.clock, items.WithPicker(func(int) int { return 0 })),
		achievements.NewEvaluator(
			repositories.NewAchievementRepository(f.db),
			f.attempts,
			repositories.NewQuestRepository(f.db),
			itemRepo,
			f.clock,
		),
	)
}

func TestRewarder_CompleteAndReward(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)
	rewarder := newRewarder(t, f)

	user := testutil.CreateUser(t, f.db, "ada")
	quest := testutil.CreateQuest(t, f.db, "Trail Run", 2,
		testutil.WithTopic("fitness"), testutil.WithRewards(3000, 300))
	sword := testutil.CreateItem(t, f.db, "Bronze Sword", 2)
	testutil.CreateItem(t, f.db, "Iron Shield", 3)
	rising := testutil.CreateAchievement(t, f.db, &models.Achievement{Title: "Rising", Type: models.AchievementTier, Tier: testutil.IntPtr(2)})
	athlete := testutil.CreateAchievement(t, f.db, &models.Achievement{Title: "Athlete", Type: models.AchievementQuestline, Topic: "fitness"})
	collector := testutil.CreateAchievement(t, f.db, &models.Achievement{Title: "Collector", Type: models.AchievementCollection, Tier: testutil.IntPtr(1)})

	uq, err := f.engine.Start(ctx, user.ID, quest.ID)
	require.NoError(t, err)

	result, err := rewarder.CompleteAndReward(ctx, user.ID, uq.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.UserQuest.IsActive)

	require.NotNil(t, result.User)
	assert.Equal(t, int64(3000), result.User.TotalGlory)
	assert.Equal(t, int64(300), result.User.TotalXP)
	assert.Equal(t, int64(3000), result.User.LifetimeGloryGained)
	assert.Equal(t, 2, result.User.Level)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, int64(3000), result.GloryAwarded)
	assert.Equal(t, int64(300), result.XPAwarded)

	require.NotNil(t, result.AwardedItem)
	assert.Equal(t, sword.ID, result.AwardedItem.ItemID)

	var unlocked []uuid.UUID
	for _, a := range result.Achievements {
		unlocked = append(unlocked, a.ID)
	}
	assert.Equal(t, []uuid.UUID{rising.ID, athlete.ID, collector.ID}, unlocked)

	active, err := f.engine.ListActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRewarder_QuestWithoutTopicAwardsNoItem(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)
	rewarder := newRewarder(t, f)

	user := testutil.CreateUser(t, f.db, "ada")
	quest := testutil.CreateQuest(t, f.db, "Nap", 1, testutil.WithRewards(10, 10))
	testutil.CreateItem(t, f.db, "Pillow", 1)

	uq, err := f.engine.Start(ctx, user.ID, quest.ID)
	require.NoError(t, err)
	result, err := rewarder.CompleteAndReward(ctx, user.ID, uq.ID)
	require.NoError(t, err)
	assert.Nil(t, result.AwardedItem)
	assert.Empty(t, result.Achievements)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, 1, result.User.Level)
}

func TestRewarder_CompletionErrorsSkipRewards(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newEngineFixture(t)
	// No reward calls are expected.
	rewarder := NewRewarder(f.engine, mock.NewMockStatsLedger(ctrl), mock.NewMockItemRewarder(ctrl), mock.NewMockAchievementChecker(ctrl))

	user := testutil.CreateUser(t, f.db, "ada")
	_, err := rewarder.CompleteAndReward(context.Background(), user.ID, uuid.New())
	require.Error(t, err)
}

func TestRewarder_DistributeRewardsFailures(t *testing.T) {
	boom := errors.New("connection reset")
	quest := &models.Quest{ID: uuid.New(), Title: "Swim", Tier: 3, GloryReward: 500, XPReward: 50, Topic: "fitness"}
	uq := &models.UserQuest{ID: uuid.New(), UserID: uuid.New(), QuestID: quest.ID, Quest: quest}
	badge := &models.Achievement{ID: uuid.New(), Title: "Swimmer"}

	tests := []struct {
		name         string
		setup        func(l *mock.MockStatsLedger, i *mock.MockItemRewarder, a *mock.MockAchievementChecker)
		steps        []RewardStep
		achievements int
	}{
		{
			name: "stats fail, later steps still run",
			setup: func(l *mock.MockStatsLedger, i *mock.MockItemRewarder, a *mock.MockAchievementChecker) {
				l.EXPECT().ApplyDelta(gomock.Any(), uq.UserID, int64(500), int64(50)).Return(nil, boom)
				i.EXPECT().AwardRandomFromTier(gomock.Any(), uq.UserID, 3).Return(nil, nil)
				a.EXPECT().CheckTier(gomock.Any(), uq.UserID, 3).Return(badge, nil)
				a.EXPECT().CheckQuest(gomock.Any(), uq.UserID, quest.ID).Return(nil, nil)
				a.EXPECT().CheckQuestline(gomock.Any(), uq.UserID, "fitness").Return(nil, nil)
				a.EXPECT().CheckCollection(gomock.Any(), uq.UserID).Return(nil, nil)
			},
			steps:        []RewardStep{StepStats},
			achievements: 1,
		},
		{
			name: "item and achievement checks fail",
			setup: func(l *mock.MockStatsLedger, i *mock.MockItemRewarder, a *mock.MockAchievementChecker) {
				l.EXPECT().ApplyDelta(gomock.Any(), uq.UserID, int64(500), int64(50)).Return(&models.User{ID: uq.UserID, TotalXP: 50, Level: 1}, nil)
				i.EXPECT().AwardRandomFromTier(gomock.Any(), uq.UserID, 3).Return(nil, boom)
				a.EXPECT().CheckTier(gomock.Any(), uq.UserID, 3).Return(nil, boom)
				a.EXPECT().CheckQuest(gomock.Any(), uq.UserID, quest.ID).Return(nil, nil)
				a.EXPECT().CheckQuestline(gomock.Any(), uq.UserID, "fitness").Return(badge, nil)
				a.EXPECT().CheckCollection(gomock.Any(), uq.UserID).Return(nil, boom)
			},
			steps:        []RewardStep{StepItem, StepTierAchievement, StepCollectionAchievement},
			achievements: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledger := mock.NewMockStatsLedger(ctrl)
			itemRewarder := mock.NewMockItemRewarder(ctrl)
			checker := mock.NewMockAchievementChecker(ctrl)
			tt.setup(ledger, itemRewarder, checker)

			r := NewRewarder(nil, ledger, itemRewarder, checker)
			result := r.DistributeRewards(context.Background(), uq)

			var steps []RewardStep
			for _, w := range result.Warnings {
				steps = append(steps, w.Step)
				assert.Equal(t, boom.Error(), w.Message)
			}
			assert.ElementsMatch(t, tt.steps, steps)
			assert.Len(t, result.Achievements, tt.achievements)
			assert.Same(t, uq, result.UserQuest)
		})
	}
}

func TestRewarder_DistributeRewardsIgnoresCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	quest := &models.Quest{ID: uuid.New(), Tier: 1, GloryReward: 10, XPReward: 10}
	uq := &models.UserQuest{ID: uuid.New(), UserID: uuid.New(), QuestID: quest.ID, Quest: quest}

	live := gomock.Cond(func(x any) bool { return x.(context.Context).Err() == nil })
	ledger := mock.NewMockStatsLedger(ctrl)
	ledger.EXPECT().ApplyDelta(live, uq.UserID, int64(10), int64(10)).Return(&models.User{ID: uq.UserID, TotalXP: 10, Level: 1}, nil)
	checker := mock.NewMockAchievementChecker(ctrl)
	checker.EXPECT().CheckTier(live, uq.UserID, 1).Return(nil, nil)
	checker.EXPECT().CheckQuest(live, uq.UserID, quest.ID).Return(nil, nil)
	checker.EXPECT().CheckCollection(live, uq.UserID).Return(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := NewRewarder(nil, ledger, mock.NewMockItemRewarder(ctrl), checker).DistributeRewards(ctx, uq)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Achievements)
}

func TestRewarder_OwnsWholeTier(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)
	rewarder := newRewarder(t, f)

	user := testutil.CreateUser(t, f.db, "ada")
	for _, name := range []string{"Bronze Sword", "Leather Cap"} {
		item := testutil.CreateItem(t, f.db, name, 2)
		testutil.GiveItem(t, f.db, user.ID, item.ID, testutil.DefaultStart)
	}
	quest := testutil.CreateQuest(t, f.db, "Hill Climb", 2, testutil.WithTopic("fitness"))

	uq, err := f.engine.Start(ctx, user.ID, quest.ID)
	require.NoError(t, err)
	result, err := rewarder.CompleteAndReward(ctx, user.ID, uq.ID)
	require.NoError(t, err)
	assert.Nil(t, result.AwardedItem)
	assert.Empty(t, result.Warnings)
}

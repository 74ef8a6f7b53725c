package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func insert(t testing.TB, db bun.IDB, model any) {
	t.Helper()
	if _, err := db.NewInsert().Model(model).Exec(context.Background()); err != nil {
		t.Fatalf("insert fixture: %v", err)
	}
}

// CreateUser inserts a fresh user with zeroed stats.
func CreateUser(t testing.TB, db bun.IDB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Level:     1,
		CreatedAt: DefaultStart,
		UpdatedAt: DefaultStart,
	}
	insert(t, db, user)
	return user
}

// QuestOption customizes a quest fixture.
type QuestOption func(*models.Quest)

func WithTopic(topic string) QuestOption {
	return func(q *models.Quest) { q.Topic = topic }
}

func WithRewards(glory, xp int64) QuestOption {
	return func(q *models.Quest) {
		q.GloryReward = glory
		q.XPReward = xp
	}
}

func WithTimeLimit(hours int) QuestOption {
	return func(q *models.Quest) { q.TimeLimitHours = hours }
}

func CreateQuest(t testing.TB, db bun.IDB, title string, tier int, opts ...QuestOption) *models.Quest {
	t.Helper()
	quest := &models.Quest{
		ID:             uuid.New(),
		Title:          title,
		Description:    title + " description",
		Tier:           tier,
		GloryReward:    100,
		XPReward:       100,
		TimeLimitHours: 24,
		CreatedAt:      DefaultStart,
		UpdatedAt:      DefaultStart,
	}
	for _, opt := range opts {
		opt(quest)
	}
	insert(t, db, quest)
	return quest
}

func CreateItem(t testing.TB, db bun.IDB, name string, tier int) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " description",
		RarityTier:  tier,
		RarityStars: 1,
		Price:       models.PriceForTier(tier),
		CreatedAt:   DefaultStart,
	}
	insert(t, db, item)
	return item
}

func GiveItem(t testing.TB, db bun.IDB, userID, itemID uuid.UUID, at time.Time) *models.UserItem {
	t.Helper()
	ui := &models.UserItem{
		ID:         uuid.New(),
		UserID:     userID,
		ItemID:     itemID,
		AcquiredAt: at,
	}
	insert(t, db, ui)
	return ui
}

func CreateAchievement(t testing.TB, db bun.IDB, a *models.Achievement) *models.Achievement {
	t.Helper()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Description == "" {
		a.Description = a.Title
	}
	if a.ColorTier == 0 {
		a.ColorTier = 1
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = DefaultStart
	}
	insert(t, db, a)
	return a
}

// CompletedAttempt inserts a finished attempt of quest for user.
func CompletedAttempt(t testing.TB, db bun.IDB, userID uuid.UUID, quest *models.Quest, at time.Time) *models.UserQuest {
	t.Helper()
	completed := at
	uq := &models.UserQuest{
		ID:          uuid.New(),
		UserID:      userID,
		QuestID:     quest.ID,
		StartedAt:   at.Add(-time.Hour),
		DeadlineAt:  at.Add(-time.Hour).Add(quest.TimeLimit()),
		CompletedAt: &completed,
		IsActive:    false,
	}
	insert(t, db, uq)
	return uq
}

func IntPtr(v int) *int {
	return &v
}

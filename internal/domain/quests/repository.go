package quests

import (
	"context"
	"time"

	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
)

// Repository is the quest catalog store.
type Repository interface {
	Create(ctx context.Context, quest *models.Quest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quest, error)
	List(ctx context.Context, tier, limit, offset int) ([]*models.Quest, error)
	ListAll(ctx context.Context) ([]*models.Quest, error)
	Update(ctx context.Context, quest *models.Quest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttemptRepository stores user quest attempts.
type AttemptRepository interface {
	InsertIfBelowLimit(ctx context.Context, uq *models.UserQuest, limit int) (bool, error)
	CountActive(ctx context.Context, userID uuid.UUID) (int, error)
	HasCompleted(ctx context.Context, userID, questID uuid.UUID) (bool, error)
	GetActive(ctx context.Context, userID, id uuid.UUID) (*models.UserQuest, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]*models.UserQuest, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error)
	DeleteActive(ctx context.Context, userID, id uuid.UUID) (bool, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserQuest, error)
	CountByQuest(ctx context.Context, questID uuid.UUID) (int, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// StatsLedger credits quest rewards to a user.
type StatsLedger interface {
	ApplyDelta(ctx context.Context, userID uuid.UUID, gloryDelta, xpDelta int64) (*models.User, error)
}

// ItemRewarder grants a random item of a tier.
type ItemRewarder interface {
	AwardRandomFromTier(ctx context.Context, userID uuid.UUID, tier int) (*models.UserItem, error)
}

// AchievementChecker evaluates the achievements a completion can unlock.
type AchievementChecker interface {
	CheckTier(ctx context.Context, userID uuid.UUID, tier int) (*models.Achievement, error)
	CheckQuest(ctx context.Context, userID, questID uuid.UUID) (*models.Achievement, error)
	CheckQuestline(ctx context.Context, userID uuid.UUID, topic string) (*models.Achievement, error)
	CheckCollection(ctx context.Context, userID uuid.UUID) (*models.Achievement, error)
}

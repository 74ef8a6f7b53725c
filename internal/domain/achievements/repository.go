package achievements

import (
	"context"
	"time"

	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Achievement, error)
	List(ctx context.Context) ([]*models.Achievement, error)
	FindByTier(ctx context.Context, tier int) (*models.Achievement, error)
	FindByQuest(ctx context.Context, questID uuid.UUID) (*models.Achievement, error)
	FindByTopic(ctx context.Context, topic string) (*models.Achievement, error)
	ListCollection(ctx context.Context) ([]*models.Achievement, error)
	HasUnlocked(ctx context.Context, userID, achievementID uuid.UUID) (bool, error)
	Unlock(ctx context.Context, ua *models.UserAchievement) (bool, error)
	ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*models.UserAchievement, error)
}

// QuestProgress answers questions about a user's completed quests.
type QuestProgress interface {
	HasCompleted(ctx context.Context, userID, questID uuid.UUID) (bool, error)
	HasCompletedTier(ctx context.Context, userID uuid.UUID, tier int) (bool, error)
	CompletedQuestIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type QuestCatalog interface {
	ListByTopic(ctx context.Context, topic string) ([]*models.Quest, error)
}

type Inventory interface {
	CountUserItems(ctx context.Context, userID uuid.UUID) (int, error)
}

// TitleHolder stores the user's displayed title.
type TitleHolder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetActiveTitle(ctx context.Context, id uuid.UUID, achievementID *uuid.UUID, at time.Time) error
}

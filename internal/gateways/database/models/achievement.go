package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AchievementType string

const (
	AchievementTier       AchievementType = "tier"
	AchievementQuest      AchievementType = "quest"
	AchievementQuestline  AchievementType = "questline"
	AchievementCollection AchievementType = "collection"
	AchievementDefault    AchievementType = "default"
)

// Achievement is a catalog entry. Tier holds the quest tier for tier
// achievements and the required item count for collection achievements.
type Achievement struct {
	bun.BaseModel `bun:"table:achievements,alias:a"`

	ID          uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	Title       string          `bun:"title,notnull" json:"title"`
	Description string          `bun:"description,notnull" json:"description"`
	Type        AchievementType `bun:"achievement_type,notnull" json:"achievement_type"`
	Tier        *int            `bun:"tier" json:"tier,omitempty"`
	Topic       string          `bun:"topic,nullzero" json:"topic,omitempty"`
	QuestID     *uuid.UUID      `bun:"quest_id,type:uuid" json:"quest_id,omitempty"`
	ColorTier   int             `bun:"color_tier,notnull,default:1" json:"color_tier"`
	IsRare      bool            `bun:"is_rare,notnull" json:"is_rare"`
	CreatedAt   time.Time       `bun:"created_at,notnull" json:"created_at"`
}

type UserAchievement struct {
	bun.BaseModel `bun:"table:user_achievements,alias:ua"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	AchievementID uuid.UUID `bun:"achievement_id,notnull,type:uuid" json:"achievement_id"`
	UnlockedAt    time.Time `bun:"unlocked_at,notnull" json:"unlocked_at"`

	Achievement *Achievement `bun:"rel:belongs-to,join:achievement_id=id" json:"achievement,omitempty"`
}

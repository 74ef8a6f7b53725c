package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Quest is a catalog template. Topic groups quests into a questline.
type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID             uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Title          string     `bun:"title,notnull" json:"title"`
	Description    string     `bun:"description,notnull" json:"description"`
	Tier           int        `bun:"tier,notnull" json:"tier"`
	GloryReward    int64      `bun:"glory_reward,notnull,default:0" json:"glory_reward"`
	XPReward       int64      `bun:"xp_reward,notnull,default:0" json:"xp_reward"`
	TimeLimitHours int        `bun:"time_limit_hours,notnull" json:"time_limit_hours"`
	Topic          string     `bun:"topic,nullzero" json:"topic,omitempty"`
	RewardItemID   *uuid.UUID `bun:"reward_item_id,type:uuid" json:"reward_item_id,omitempty"`
	EnemyName      string     `bun:"enemy_name,nullzero" json:"enemy_name,omitempty"`
	EnemyImageURL  string     `bun:"enemy_image_url,nullzero" json:"enemy_image_url,omitempty"`
	CreatedAt      time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,notnull" json:"updated_at"`
}

// TimeLimit returns the quest duration.
func (q *Quest) TimeLimit() time.Duration {
	return time.Duration(q.TimeLimitHours) * time.Hour
}

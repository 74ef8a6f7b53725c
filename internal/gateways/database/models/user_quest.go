package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserQuest is one attempt of a quest by a user. Active rows have no
// CompletedAt; completed rows are kept as history.
type UserQuest struct {
	bun.BaseModel `bun:"table:user_quests,alias:uq"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	UserID      uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	QuestID     uuid.UUID  `bun:"quest_id,notnull,type:uuid" json:"quest_id"`
	StartedAt   time.Time  `bun:"started_at,notnull" json:"started_at"`
	DeadlineAt  time.Time  `bun:"deadline_at,notnull" json:"deadline_at"`
	CompletedAt *time.Time `bun:"completed_at" json:"completed_at"`
	IsActive    bool       `bun:"is_active,notnull" json:"is_active"`

	Quest *Quest `bun:"rel:belongs-to,join:quest_id=id" json:"quest,omitempty"`
}

// Expired reports whether now is past the attempt's deadline.
func (uq *UserQuest) Expired(now time.Time) bool {
	return now.After(uq.DeadlineAt)
}

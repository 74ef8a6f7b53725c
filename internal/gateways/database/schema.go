package database

import (
	"context"
	"fmt"

	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

var tables = []any{
	(*models.User)(nil),
	(*models.Quest)(nil),
	(*models.UserQuest)(nil),
	(*models.Item)(nil),
	(*models.UserItem)(nil),
	(*models.Achievement)(nil),
	(*models.UserAchievement)(nil),
}

// Unique indexes back the idempotent inserts in the repositories.
var indexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_items_user_item ON user_items(user_id, item_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_achievements_user_achievement ON user_achievements(user_id, achievement_id)",
	"CREATE INDEX IF NOT EXISTS idx_user_quests_user_active ON user_quests(user_id, is_active)",
	"CREATE INDEX IF NOT EXISTS idx_user_quests_user_quest ON user_quests(user_id, quest_id)",
	"CREATE INDEX IF NOT EXISTS idx_user_quests_completed ON user_quests(user_id, completed_at)",
	"CREATE INDEX IF NOT EXISTS idx_quests_tier ON quests(tier)",
	"CREATE INDEX IF NOT EXISTS idx_quests_topic ON quests(topic)",
	"CREATE INDEX IF NOT EXISTS idx_items_rarity_tier ON items(rarity_tier)",
	"CREATE INDEX IF NOT EXISTS idx_achievements_type ON achievements(achievement_type)",
}

// CreateSchema creates every table and index if missing. It only uses SQL
// understood by both Postgres and SQLite.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

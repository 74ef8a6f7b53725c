package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var seedCatalog []byte

type SeedCatalog struct {
	Items        []SeedItem        `yaml:"items"`
	Quests       []SeedQuest       `yaml:"quests"`
	Achievements []SeedAchievement `yaml:"achievements"`
}

type SeedItem struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tier        int    `yaml:"tier"`
	Stars       int    `yaml:"stars"`
}

type SeedQuest struct {
	Key         string `yaml:"key"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Tier        int    `yaml:"tier"`
	Glory       int64  `yaml:"glory"`
	XP          int64  `yaml:"xp"`
	Hours       int    `yaml:"hours"`
	Topic       string `yaml:"topic"`
	Enemy       string `yaml:"enemy"`
	RewardItem  string `yaml:"reward_item"`
}

type SeedAchievement struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Tier        *int   `yaml:"tier"`
	Topic       string `yaml:"topic"`
	Quest       string `yaml:"quest"`
	Color       int    `yaml:"color"`
	Rare        bool   `yaml:"rare"`
}

// LoadSeedCatalog parses the embedded starter catalog.
func LoadSeedCatalog() (*SeedCatalog, error) {
	return ParseSeedCatalog(seedCatalog)
}

func ParseSeedCatalog(data []byte) (*SeedCatalog, error) {
	var catalog SeedCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return &catalog, nil
}

// Seed inserts the catalog into each table that is still empty. Quest keys
// referenced by achievements and item keys referenced by quests are resolved
// to the generated ids.
func Seed(ctx context.Context, db bun.IDB, catalog *SeedCatalog, now time.Time) error {
	itemIDs := make(map[string]uuid.UUID, len(catalog.Items))
	questIDs := make(map[string]uuid.UUID, len(catalog.Quests))

	itemCount, err := db.NewSelect().Model((*models.Item)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if itemCount == 0 && len(catalog.Items) > 0 {
		items := make([]*models.Item, 0, len(catalog.Items))
		for _, si := range catalog.Items {
			item := &models.Item{
				ID:          uuid.New(),
				Name:        si.Name,
				Description: si.Description,
				RarityTier:  si.Tier,
				RarityStars: max(si.Stars, 1),
				Price:       models.PriceForTier(si.Tier),
				CreatedAt:   now,
			}
			itemIDs[si.Key] = item.ID
			items = append(items, item)
		}
		if _, err := db.NewInsert().Model(&items).Exec(ctx); err != nil {
			return fmt.Errorf("failed to seed items: %w", err)
		}
		slog.Info("Seeded items", slog.String("type", "db"), slog.Int("count", len(items)))
	}

	questCount, err := db.NewSelect().Model((*models.Quest)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count quests: %w", err)
	}
	if questCount == 0 && len(catalog.Quests) > 0 {
		quests := make([]*models.Quest, 0, len(catalog.Quests))
		for _, sq := range catalog.Quests {
			quest := &models.Quest{
				ID:             uuid.New(),
				Title:          sq.Title,
				Description:    sq.Description,
				Tier:           sq.Tier,
				GloryReward:    sq.Glory,
				XPReward:       sq.XP,
				TimeLimitHours: sq.Hours,
				Topic:          sq.Topic,
				EnemyName:      sq.Enemy,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if id, ok := itemIDs[sq.RewardItem]; ok {
				quest.RewardItemID = &id
			}
			questIDs[sq.Key] = quest.ID
			quests = append(quests, quest)
		}
		if _, err := db.NewInsert().Model(&quests).Exec(ctx); err != nil {
			return fmt.Errorf("failed to seed quests: %w", err)
		}
		slog.Info("Seeded quests", slog.String("type", "db"), slog.Int("count", len(quests)))
	}

	achievementCount, err := db.NewSelect().Model((*models.Achievement)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count achievements: %w", err)
	}
	if achievementCount == 0 && len(catalog.Achievements) > 0 {
		achievements := make([]*models.Achievement, 0, len(catalog.Achievements))
		for _, sa := range catalog.Achievements {
			achievement := &models.Achievement{
				ID:          uuid.New(),
				Title:       sa.Title,
				Description: sa.Description,
				Type:        models.AchievementType(sa.Type),
				Tier:        sa.Tier,
				Topic:       sa.Topic,
				ColorTier:   max(sa.Color, 1),
				IsRare:      sa.Rare,
				CreatedAt:   now,
			}
			if sa.Quest != "" {
				id, ok := questIDs[sa.Quest]
				if !ok {
					slog.Warn("Skipping achievement for unknown quest",
						slog.String("type", "db"),
						slog.String("title", sa.Title),
						slog.String("quest", sa.Quest),
					)
					continue
				}
				achievement.QuestID = &id
			}
			achievements = append(achievements, achievement)
		}
		if len(achievements) > 0 {
			if _, err := db.NewInsert().Model(&achievements).Exec(ctx); err != nil {
				return fmt.Errorf("failed to seed achievements: %w", err)
			}
		}
		slog.Info("Seeded achievements", slog.String("type", "db"), slog.Int("count", len(achievements)))
	}

	return nil
}

package quests

import (
	"context"
	"strings"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
)

// Catalog manages quest templates.
type Catalog struct {
	quests   Repository
	attempts AttemptRepository
	clock    clock.Clock
}

func NewCatalog(quests Repository, attempts AttemptRepository, clk clock.Clock) *Catalog {
	return &Catalog{quests: quests, attempts: attempts, clock: clk}
}

// QuestInput is the editable part of a quest. A zero TimeLimitHours uses
// the default.
type QuestInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Tier           int        `json:"tier"`
	GloryReward    int64      `json:"glory_reward"`
	XPReward       int64      `json:"xp_reward"`
	TimeLimitHours int        `json:"time_limit_hours"`
	Topic          string     `json:"topic"`
	RewardItemID   *uuid.UUID `json:"reward_item_id"`
	EnemyName      string     `json:"enemy_name"`
	EnemyImageURL  string     `json:"enemy_image_url"`
}

func (in *QuestInput) normalize(op string) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Title == "" {
		return apperr.Validation(op, "title is required")
	}
	if !config.ValidTier(in.Tier) {
		return apperr.Newf(apperr.KindValidation, op, "tier must be %d to %d", config.MinTier, config.MaxTier)
	}
	if in.GloryReward < 0 || in.XPReward < 0 {
		return apperr.Validation(op, "rewards cannot be negative")
	}
	if in.TimeLimitHours == 0 {
		in.TimeLimitHours = config.DefaultQuestTimeLimitHours
	}
	if in.TimeLimitHours < config.MinQuestTimeLimitHours {
		return apperr.Newf(apperr.KindValidation, op, "time limit must be at least %d hour", config.MinQuestTimeLimitHours)
	}
	return nil
}

func (in QuestInput) apply(q *models.Quest) {
	q.Title = in.Title
	q.Description = in.Description
	q.Tier = in.Tier
	q.GloryReward = in.GloryReward
	q.XPReward = in.XPReward
	q.TimeLimitHours = in.TimeLimitHours
	q.Topic = in.Topic
	q.RewardItemID = in.RewardItemID
	q.EnemyName = in.EnemyName
	q.EnemyImageURL = in.EnemyImageURL
}

func (c *Catalog) Create(ctx context.Context, in QuestInput) (*models.Quest, error) {
	if err := in.normalize("quests.Create"); err != nil {
		return nil, err
	}
	now := c.clock.Now()
	quest := &models.Quest{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	in.apply(quest)
	if err := c.quests.Create(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*models.Quest, error) {
	return c.quests.GetByID(ctx, id)
}

// List returns quests ordered by tier. A tier of 0 lists every tier.
func (c *Catalog) List(ctx context.Context, tier, limit, offset int) ([]*models.Quest, error) {
	if tier != 0 && !config.ValidTier(tier) {
		return nil, apperr.Newf(apperr.KindValidation, "quests.List", "tier must be %d to %d", config.MinTier, config.MaxTier)
	}
	return c.quests.List(ctx, tier, limit, offset)
}

// Update replaces a quest's editable fields. Existing attempts keep their
// deadlines.
func (c *Catalog) Update(ctx context.Context, id uuid.UUID, in QuestInput) (*models.Quest, error) {
	if err := in.normalize("quests.Update"); err != nil {
		return nil, err
	}
	quest, err := c.quests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(quest)
	quest.UpdatedAt = c.clock.Now()
	if err := c.quests.Update(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

// Delete removes a quest nobody has attempted.
func (c *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := c.quests.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := c.attempts.CountByQuest(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Newf(apperr.KindValidation, "quests.Delete", "quest has %d attempts", n)
	}
	return c.quests.Delete(ctx, id)
}

type questTitles []*models.Quest

func (q questTitles) String(i int) string { return q[i].Title }
func (q questTitles) Len() int            { return len(q) }

// Search fuzzy-matches quest titles, best match first.
func (c *Catalog) Search(ctx context.Context, query string, limit int) ([]*models.Quest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("quests.Search", "query is required")
	}
	all, err := c.quests.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(query, questTitles(all))
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]*models.Quest, 0, len(matches))
	for _, m := range matches {
		results = append(results, all[m.Index])
	}
	return results, nil
}

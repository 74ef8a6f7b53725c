package achievements

import (
	"context"
	"errors"
	"log/slog"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
)

// Evaluator unlocks achievements whose conditions a user meets. Every check
// is idempotent and returns only achievements unlocked by that call.
type Evaluator struct {
	repository Repository
	progress   QuestProgress
	quests     QuestCatalog
	inventory  Inventory
	clock      clock.Clock
}

func NewEvaluator(repository Repository, progress QuestProgress, quests QuestCatalog, inventory Inventory, clk clock.Clock) *Evaluator {
	return &Evaluator{
		repository: repository,
		progress:   progress,
		quests:     quests,
		inventory:  inventory,
		clock:      clk,
	}
}

// CheckTier unlocks the achievement for completing a quest of tier.
func (e *Evaluator) CheckTier(ctx context.Context, userID uuid.UUID, tier int) (*models.Achievement, error) {
	achievement, err := optional(e.repository.FindByTier(ctx, tier))
	if err != nil || achievement == nil {
		return nil, err
	}

	done, err := e.progress.HasCompletedTier(ctx, userID, tier)
	if err != nil || !done {
		return nil, err
	}
	return e.unlock(ctx, userID, achievement)
}

// CheckQuest unlocks the achievement bound to one specific quest.
func (e *Evaluator) CheckQuest(ctx context.Context, userID, questID uuid.UUID) (*models.Achievement, error) {
	achievement, err := optional(e.repository.FindByQuest(ctx, questID))
	if err != nil || achievement == nil {
		return nil, err
	}

	done, err := e.progress.HasCompleted(ctx, userID, questID)
	if err != nil || !done {
		return nil, err
	}
	return e.unlock(ctx, userID, achievement)
}

// CheckQuestline unlocks the topic's achievement once every quest sharing
// the topic has been completed.
func (e *Evaluator) CheckQuestline(ctx context.Context, userID uuid.UUID, topic string) (*models.Achievement, error) {
	if topic == "" {
		return nil, nil
	}

	achievement, err := optional(e.repository.FindByTopic(ctx, topic))
	if err != nil || achievement == nil {
		return nil, err
	}

	line, err := e.quests.ListByTopic(ctx, topic)
	if err != nil || len(line) == 0 {
		return nil, err
	}

	completed, err := e.progress.CompletedQuestIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	done := make(map[uuid.UUID]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}
	for _, q := range line {
		if _, ok := done[q.ID]; !ok {
			return nil, nil
		}
	}

	return e.unlock(ctx, userID, achievement)
}

// CheckCollection picks the collection achievement with the highest item
// threshold the user meets and unlocks it if not yet held.
func (e *Evaluator) CheckCollection(ctx context.Context, userID uuid.UUID) (*models.Achievement, error) {
	count, err := e.inventory.CountUserItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	collection, err := e.repository.ListCollection(ctx)
	if err != nil {
		return nil, err
	}

	var best *models.Achievement
	for _, a := range collection {
		if a.Tier != nil && *a.Tier <= count && (best == nil || *a.Tier > *best.Tier) {
			best = a
		}
	}
	if best == nil {
		return nil, nil
	}
	return e.unlock(ctx, userID, best)
}

func (e *Evaluator) unlock(ctx context.Context, userID uuid.UUID, achievement *models.Achievement) (*models.Achievement, error) {
	held, err := e.repository.HasUnlocked(ctx, userID, achievement.ID)
	if err != nil || held {
		return nil, err
	}

	inserted, err := e.repository.Unlock(ctx, &models.UserAchievement{
		ID:            uuid.New(),
		UserID:        userID,
		AchievementID: achievement.ID,
		UnlockedAt:    e.clock.Now(),
	})
	if err != nil || !inserted {
		return nil, err
	}

	slog.Info("Achievement unlocked",
		slog.String("type", "quest"),
		slog.String("user_id", userID.String()),
		slog.String("achievement", achievement.Title),
		slog.String("kind", string(achievement.Type)),
	)
	return achievement, nil
}

// optional turns a NotFound lookup into a nil result.
func optional(a *models.Achievement, err error) (*models.Achievement, error) {
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

package quests

import (
	"context"
	"log/slog"
	"sync"

	"github.com/embark-app/embark/internal/domain/leveling"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RewardStep names one stage of reward distribution.
type RewardStep string

const (
	StepStats                 RewardStep = "stats"
	StepItem                  RewardStep = "item"
	StepTierAchievement       RewardStep = "tier_achievement"
	StepQuestAchievement      RewardStep = "quest_achievement"
	StepQuestlineAchievement  RewardStep = "questline_achievement"
	StepCollectionAchievement RewardStep = "collection_achievement"
)

// RewardWarning records a reward step that failed after the quest was
// completed.
type RewardWarning struct {
	Step    RewardStep `json:"step"`
	Message string     `json:"message"`
}

// CompletionResult is the outcome of completing a quest. The completion
// itself always stands; failed reward steps appear in Warnings.
type CompletionResult struct {
	UserQuest    *models.UserQuest     `json:"user_quest"`
	User         *models.User          `json:"user,omitempty"`
	GloryAwarded int64                 `json:"glory_awarded"`
	XPAwarded    int64                 `json:"xp_awarded"`
	LeveledUp    bool                  `json:"leveled_up"`
	AwardedItem  *models.UserItem      `json:"awarded_item"`
	Achievements []*models.Achievement `json:"achievements"`
	Warnings     []RewardWarning       `json:"reward_warnings"`

	mu sync.Mutex
}

func (r *CompletionResult) warn(step RewardStep, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, RewardWarning{Step: step, Message: err.Error()})
}

type achievementCheck struct {
	step RewardStep
	run  func(context.Context) (*models.Achievement, error)
}

// Rewarder completes quests and distributes their rewards.
type Rewarder struct {
	engine       *Engine
	ledger       StatsLedger
	items        ItemRewarder
	achievements AchievementChecker
}

func NewRewarder(engine *Engine, ledger StatsLedger, items ItemRewarder, achievements AchievementChecker) *Rewarder {
	return &Rewarder{
		engine:       engine,
		ledger:       ledger,
		items:        items,
		achievements: achievements,
	}
}

// CompleteAndReward completes an attempt and then distributes its rewards.
// Errors from the completion are returned; reward failures are not.
func (r *Rewarder) CompleteAndReward(ctx context.Context, userID, userQuestID uuid.UUID) (*CompletionResult, error) {
	uq, err := r.engine.Complete(ctx, userID, userQuestID)
	if err != nil {
		return nil, err
	}
	return r.DistributeRewards(ctx, uq), nil
}

// DistributeRewards credits glory and XP, awards a tier item for
// questline quests, and then evaluates achievements. The steps run even
// if the caller's context is cancelled.
func (r *Rewarder) DistributeRewards(ctx context.Context, uq *models.UserQuest) *CompletionResult {
	ctx = context.WithoutCancel(ctx)
	quest := uq.Quest
	result := &CompletionResult{
		UserQuest:    uq,
		Achievements: []*models.Achievement{},
		Warnings:     []RewardWarning{},
	}

	user, err := r.ledger.ApplyDelta(ctx, uq.UserID, quest.GloryReward, quest.XPReward)
	if err != nil {
		r.stepFailed(result, StepStats, err)
	} else {
		result.User = user
		result.GloryAwarded = quest.GloryReward
		result.XPAwarded = quest.XPReward
		result.LeveledUp = leveling.LevelForXP(user.TotalXP-quest.XPReward) < user.Level
	}

	if quest.Topic != "" {
		item, err := r.items.AwardRandomFromTier(ctx, uq.UserID, quest.Tier)
		if err != nil {
			r.stepFailed(result, StepItem, err)
		} else {
			result.AwardedItem = item
		}
	}

	checks := []achievementCheck{
		{StepTierAchievement, func(ctx context.Context) (*models.Achievement, error) {
			return r.achievements.CheckTier(ctx, uq.UserID, quest.Tier)
		}},
		{StepQuestAchievement, func(ctx context.Context) (*models.Achievement, error) {
			return r.achievements.CheckQuest(ctx, uq.UserID, quest.ID)
		}},
	}
	if quest.Topic != "" {
		checks = append(checks, achievementCheck{StepQuestlineAchievement, func(ctx context.Context) (*models.Achievement, error) {
			return r.achievements.CheckQuestline(ctx, uq.UserID, quest.Topic)
		}})
	}

	// Slots keep the result order stable regardless of completion order.
	unlocked := make([]*models.Achievement, len(checks)+1)
	var g errgroup.Group
	for i, check := range checks {
		g.Go(func() error {
			a, err := check.run(ctx)
			if err != nil {
				r.stepFailed(result, check.step, err)
				return nil
			}
			unlocked[i] = a
			return nil
		})
	}
	_ = g.Wait()

	// Collection runs last so it sees the item awarded above.
	if a, err := r.achievements.CheckCollection(ctx, uq.UserID); err != nil {
		r.stepFailed(result, StepCollectionAchievement, err)
	} else {
		unlocked[len(checks)] = a
	}

	for _, a := range unlocked {
		if a != nil {
			result.Achievements = append(result.Achievements, a)
		}
	}
	return result
}

func (r *Rewarder) stepFailed(result *CompletionResult, step RewardStep, err error) {
	slog.Error("Reward step failed",
		slog.String("type", "error"),
		slog.String("step", string(step)),
		slog.String("user_id", result.UserQuest.UserID.String()),
		slog.String("user_quest_id", result.UserQuest.ID.String()),
		slog.Any("error", err),
	)
	result.warn(step, err)
}

package quests

import (
	"context"
	"log/slog"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/embark-app/embark/internal/locks"
	"github.com/google/uuid"
)

// Engine runs the attempt lifecycle: start, complete, abandon.
type Engine struct {
	quests   Repository
	attempts AttemptRepository
	users    UserLookup
	locks    *locks.Keyed
	clock    clock.Clock
	game     config.GameConfig
}

func NewEngine(quests Repository, attempts AttemptRepository, users UserLookup, userLocks *locks.Keyed, clk clock.Clock, game config.GameConfig) *Engine {
	return &Engine{
		quests:   quests,
		attempts: attempts,
		users:    users,
		locks:    userLocks,
		clock:    clk,
		game:     game,
	}
}

// Start begins an attempt with a deadline of now plus the quest's time
// limit. A quest may be active more than once; each attempt takes a slot.
func (e *Engine) Start(ctx context.Context, userID, questID uuid.UUID) (*models.UserQuest, error) {
	const op = "quests.Start"

	if _, err := e.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	unlock := e.locks.Lock(userID.String())
	defer unlock()

	completed, err := e.attempts.HasCompleted(ctx, userID, questID)
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, apperr.New(apperr.KindAlreadyCompleted, op, "quest was already completed")
	}

	active, err := e.attempts.CountActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active >= e.game.MaxActiveQuests {
		return nil, e.limitExceeded(op)
	}

	quest, err := e.quests.GetByID(ctx, questID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	uq := &models.UserQuest{
		ID:         uuid.New(),
		UserID:     userID,
		QuestID:    questID,
		StartedAt:  now,
		DeadlineAt: now.Add(quest.TimeLimit()),
	}
	inserted, err := e.attempts.InsertIfBelowLimit(ctx, uq, e.game.MaxActiveQuests)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, e.limitExceeded(op)
	}
	uq.Quest = quest

	slog.Info("Quest started",
		slog.String("type", "quest"),
		slog.String("user_id", userID.String()),
		slog.String("quest", quest.Title),
		slog.Time("deadline", uq.DeadlineAt),
	)
	return uq, nil
}

func (e *Engine) limitExceeded(op string) error {
	return apperr.Newf(apperr.KindLimitExceeded, op, "at most %d quests can be active", e.game.MaxActiveQuests)
}

// ListActive returns active attempts with their quests.
func (e *Engine) ListActive(ctx context.Context, userID uuid.UUID) ([]*models.UserQuest, error) {
	return e.attempts.ListActive(ctx, userID)
}

// Complete finishes an active attempt before its deadline. An expired
// attempt stays active and must be abandoned.
func (e *Engine) Complete(ctx context.Context, userID, userQuestID uuid.UUID) (*models.UserQuest, error) {
	const op = "quests.Complete"

	uq, err := e.attempts.GetActive(ctx, userID, userQuestID)
	if err != nil {
		return nil, err
	}
	if uq.Quest == nil {
		return nil, apperr.NotFound(op, apperr.EntityQuest, uq.QuestID)
	}

	now := e.clock.Now()
	if uq.Expired(now) {
		return nil, apperr.New(apperr.KindDeadlineExpired, op, "quest deadline has passed")
	}

	ok, err := e.attempts.MarkCompleted(ctx, uq.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// completed or abandoned concurrently
		return nil, apperr.NotFound(op, apperr.EntityUserQuest, userQuestID)
	}

	uq.IsActive = false
	uq.CompletedAt = &now

	slog.Info("Quest completed",
		slog.String("type", "quest"),
		slog.String("user_id", userID.String()),
		slog.String("quest", uq.Quest.Title),
	)
	return uq, nil
}

// Abandon deletes an active attempt, expired or not. The quest can be
// started again later.
func (e *Engine) Abandon(ctx context.Context, userID, userQuestID uuid.UUID) error {
	ok, err := e.attempts.DeleteActive(ctx, userID, userQuestID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("quests.Abandon", apperr.EntityUserQuest, userQuestID)
	}

	slog.Info("Quest abandoned",
		slog.String("type", "quest"),
		slog.String("user_id", userID.String()),
		slog.String("user_quest_id", userQuestID.String()),
	)
	return nil
}

// History returns completed attempts, most recent first. A limit of 0
// uses the default.
func (e *Engine) History(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserQuest, error) {
	if limit == 0 {
		limit = e.game.HistoryDefaultLimit
	}
	if limit < 1 || limit > e.game.HistoryMaxLimit {
		return nil, apperr.Newf(apperr.KindValidation, "quests.History", "limit must be 1 to %d", e.game.HistoryMaxLimit)
	}
	return e.attempts.History(ctx, userID, limit)
}

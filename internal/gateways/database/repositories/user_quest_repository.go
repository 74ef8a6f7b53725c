package repositories

import (
	"context"
	"time"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/embark-app/embark/internal/logger"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserQuestRepository stores quest attempts, both active and completed.
type UserQuestRepository struct {
	BaseRepository
}

func NewUserQuestRepository(db bun.IDB) *UserQuestRepository {
	return &UserQuestRepository{BaseRepository: NewBaseRepository(db)}
}

const insertBelowLimitQuery = `
INSERT INTO user_quests (id, user_id, quest_id, started_at, deadline_at, completed_at, is_active)
SELECT ?, ?, ?, ?, ?, NULL, ?
WHERE (SELECT COUNT(*) FROM user_quests WHERE user_id = ? AND is_active = ?) < ?`

// InsertIfBelowLimit inserts an active attempt only while the user holds
// fewer than limit active attempts. The count and the insert are one
// statement; false means the limit was reached.
func (r *UserQuestRepository) InsertIfBelowLimit(ctx context.Context, uq *models.UserQuest, limit int) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	args := []any{
		uq.ID, uq.UserID, uq.QuestID, uq.StartedAt, uq.DeadlineAt, true,
		uq.UserID, true, limit,
	}
	ql := logger.NewQueryLogger("userQuests.InsertIfBelowLimit", insertBelowLimitQuery, args...)
	res, err := r.db.ExecContext(ctx, insertBelowLimitQuery, args...)
	n, err := r.rowsAffected("userQuests.InsertIfBelowLimit", apperr.EntityUserQuest, res, err)
	ql.Log(err, n)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	uq.IsActive = true
	uq.CompletedAt = nil
	return true, nil
}

func (r *UserQuestRepository) CountActive(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.Count(ctx, "userQuests.CountActive", apperr.EntityUserQuest,
		r.db.NewSelect().
			Model((*models.UserQuest)(nil)).
			Where("user_id = ?", userID).
			Where("is_active = ?", true))
}

// HasCompleted reports whether the user ever completed the quest.
func (r *UserQuestRepository) HasCompleted(ctx context.Context, userID, questID uuid.UUID) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.Exists(ctx, "userQuests.HasCompleted", apperr.EntityUserQuest,
		r.db.NewSelect().
			Model((*models.UserQuest)(nil)).
			Where("user_id = ?", userID).
			Where("quest_id = ?", questID).
			Where("completed_at IS NOT NULL"))
}

// HasCompletedTier reports whether the user completed any quest of tier.
func (r *UserQuestRepository) HasCompletedTier(ctx context.Context, userID uuid.UUID, tier int) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.Exists(ctx, "userQuests.HasCompletedTier", apperr.EntityUserQuest,
		r.db.NewSelect().
			Model((*models.UserQuest)(nil)).
			Join("JOIN quests AS q ON q.id = uq.quest_id").
			Where("uq.user_id = ?", userID).
			Where("uq.completed_at IS NOT NULL").
			Where("q.tier = ?", tier))
}

// CompletedQuestIDs returns the distinct quests the user has completed.
func (r *UserQuestRepository) CompletedQuestIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var ids []uuid.UUID
	err := r.db.NewSelect().
		Model((*models.UserQuest)(nil)).
		ColumnExpr("DISTINCT quest_id").
		Where("user_id = ?", userID).
		Where("completed_at IS NOT NULL").
		Scan(ctx, &ids)
	if err != nil {
		return nil, r.HandleError("userQuests.CompletedQuestIDs", apperr.EntityUserQuest, err)
	}
	return ids, nil
}

// GetActive loads an active attempt owned by userID, with its quest.
func (r *UserQuestRepository) GetActive(ctx context.Context, userID, id uuid.UUID) (*models.UserQuest, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	uq := new(models.UserQuest)
	err := r.db.NewSelect().
		Model(uq).
		Relation("Quest").
		Where("uq.id = ?", id).
		Where("uq.user_id = ?", userID).
		Where("uq.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("userQuests.GetActive", apperr.EntityUserQuest, id, err)
	}
	return uq, nil
}

// ListActive returns the user's active attempts, newest first.
func (r *UserQuestRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]*models.UserQuest, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var uqs []*models.UserQuest
	err := r.db.NewSelect().
		Model(&uqs).
		Relation("Quest").
		Where("uq.user_id = ?", userID).
		Where("uq.is_active = ?", true).
		Order("uq.started_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("userQuests.ListActive", apperr.EntityUserQuest, err)
	}
	return uqs, nil
}

// MarkCompleted flips an active attempt to completed. False means the row
// was no longer active.
func (r *UserQuestRepository) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.UserQuest)(nil)).
		Set("is_active = ?", false).
		Set("completed_at = ?", completedAt).
		Where("id = ?", id).
		Where("is_active = ?", true).
		Exec(ctx)
	n, err := r.rowsAffected("userQuests.MarkCompleted", apperr.EntityUserQuest, res, err)
	return n > 0, err
}

// DeleteActive removes an active attempt owned by userID. Completed rows
// are never deleted.
func (r *UserQuestRepository) DeleteActive(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.UserQuest)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Where("is_active = ?", true).
		Exec(ctx)
	n, err := r.rowsAffected("userQuests.DeleteActive", apperr.EntityUserQuest, res, err)
	return n > 0, err
}

// History returns completed attempts, most recent first.
func (r *UserQuestRepository) History(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserQuest, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var uqs []*models.UserQuest
	err := r.db.NewSelect().
		Model(&uqs).
		Relation("Quest").
		Where("uq.user_id = ?", userID).
		Where("uq.completed_at IS NOT NULL").
		Order("uq.completed_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("userQuests.History", apperr.EntityUserQuest, err)
	}
	return uqs, nil
}

// CountByQuest counts attempts of any state that reference the quest.
func (r *UserQuestRepository) CountByQuest(ctx context.Context, questID uuid.UUID) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.Count(ctx, "userQuests.CountByQuest", apperr.EntityUserQuest,
		r.db.NewSelect().
			Model((*models.UserQuest)(nil)).
			Where("quest_id = ?", questID))
}

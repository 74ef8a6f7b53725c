package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AchievementRepository struct {
	BaseRepository
}

func NewAchievementRepository(db bun.IDB) *AchievementRepository {
	return &AchievementRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *AchievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewInsert().Model(achievement).Exec(ctx)
	return r.HandleError("achievements.Create", apperr.EntityAchievement, err)
}

func (r *AchievementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Achievement, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	achievement := new(models.Achievement)
	err := r.db.NewSelect().
		Model(achievement).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("achievements.GetByID", apperr.EntityAchievement, id, err)
	}
	return achievement, nil
}

func (r *AchievementRepository) List(ctx context.Context) ([]*models.Achievement, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var achievements []*models.Achievement
	err := r.db.NewSelect().
		Model(&achievements).
		Order("achievement_type ASC", "tier ASC", "title ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("achievements.List", apperr.EntityAchievement, err)
	}
	return achievements, nil
}

func (r *AchievementRepository) findOne(ctx context.Context, op string, where func(*bun.SelectQuery) *bun.SelectQuery) (*models.Achievement, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	achievement := new(models.Achievement)
	err := where(r.db.NewSelect().Model(achievement)).
		Order("created_at ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError(op, apperr.EntityAchievement, err)
	}
	return achievement, nil
}

func (r *AchievementRepository) FindByTier(ctx context.Context, tier int) (*models.Achievement, error) {
	return r.findOne(ctx, "achievements.FindByTier", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("achievement_type = ?", models.AchievementTier).Where("tier = ?", tier)
	})
}

func (r *AchievementRepository) FindByQuest(ctx context.Context, questID uuid.UUID) (*models.Achievement, error) {
	return r.findOne(ctx, "achievements.FindByQuest", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("achievement_type = ?", models.AchievementQuest).Where("quest_id = ?", questID)
	})
}

func (r *AchievementRepository) FindByTopic(ctx context.Context, topic string) (*models.Achievement, error) {
	return r.findOne(ctx, "achievements.FindByTopic", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("achievement_type = ?", models.AchievementQuestline).Where("topic = ?", topic)
	})
}

// ListCollection returns collection achievements by required item count.
func (r *AchievementRepository) ListCollection(ctx context.Context) ([]*models.Achievement, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var achievements []*models.Achievement
	err := r.db.NewSelect().
		Model(&achievements).
		Where("achievement_type = ?", models.AchievementCollection).
		Where("tier IS NOT NULL").
		Order("tier ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("achievements.ListCollection", apperr.EntityAchievement, err)
	}
	return achievements, nil
}

func (r *AchievementRepository) HasUnlocked(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.Exists(ctx, "achievements.HasUnlocked", apperr.EntityUserAchievement,
		r.db.NewSelect().
			Model((*models.UserAchievement)(nil)).
			Where("user_id = ?", userID).
			Where("achievement_id = ?", achievementID))
}

// Unlock records the achievement for the user. False means it was already held.
func (r *AchievementRepository) Unlock(ctx context.Context, ua *models.UserAchievement) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewInsert().
		Model(ua).
		On("CONFLICT (user_id, achievement_id) DO NOTHING").
		Exec(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	n, err := r.rowsAffected("achievements.Unlock", apperr.EntityUserAchievement, res, err)
	return n > 0, err
}

// ListUserAchievements returns unlocked achievements, most recent first.
func (r *AchievementRepository) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*models.UserAchievement, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var uas []*models.UserAchievement
	err := r.db.NewSelect().
		Model(&uas).
		Relation("Achievement").
		Where("ua.user_id = ?", userID).
		Order("ua.unlocked_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("achievements.ListUserAchievements", apperr.EntityUserAchievement, err)
	}
	return uas, nil
}

package repositories

import (
	"context"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// QuestRepository reads and edits the quest catalog.
type QuestRepository struct {
	BaseRepository
}

func NewQuestRepository(db bun.IDB) *QuestRepository {
	return &QuestRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *QuestRepository) Create(ctx context.Context, quest *models.Quest) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewInsert().Model(quest).Exec(ctx)
	return r.HandleError("quests.Create", apperr.EntityQuest, err)
}

func (r *QuestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quest, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	quest := new(models.Quest)
	err := r.db.NewSelect().
		Model(quest).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("quests.GetByID", apperr.EntityQuest, id, err)
	}
	return quest, nil
}

// List returns quests ordered by tier then title. A tier of 0 lists all tiers.
func (r *QuestRepository) List(ctx context.Context, tier, limit, offset int) ([]*models.Quest, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	limit, offset = clampPage(limit, offset, config.DefaultPageSize, config.MaxPageSize)

	var quests []*models.Quest
	q := r.db.NewSelect().
		Model(&quests).
		Order("tier ASC", "title ASC").
		Limit(limit).
		Offset(offset)
	if tier > 0 {
		q = q.Where("tier = ?", tier)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, r.HandleError("quests.List", apperr.EntityQuest, err)
	}
	return quests, nil
}

func (r *QuestRepository) ListAll(ctx context.Context) ([]*models.Quest, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var quests []*models.Quest
	err := r.db.NewSelect().
		Model(&quests).
		Order("tier ASC", "title ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("quests.ListAll", apperr.EntityQuest, err)
	}
	return quests, nil
}

func (r *QuestRepository) ListByTopic(ctx context.Context, topic string) ([]*models.Quest, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var quests []*models.Quest
	err := r.db.NewSelect().
		Model(&quests).
		Where("topic = ?", topic).
		Order("tier ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("quests.ListByTopic", apperr.EntityQuest, err)
	}
	return quests, nil
}

func (r *QuestRepository) Update(ctx context.Context, quest *models.Quest) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model(quest).
		Column("title", "description", "tier", "glory_reward", "xp_reward",
			"time_limit_hours", "topic", "reward_item_id", "enemy_name", "enemy_image_url", "updated_at").
		WherePK().
		Exec(ctx)
	n, err := r.rowsAffected("quests.Update", apperr.EntityQuest, res, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("quests.Update", apperr.EntityQuest, quest.ID)
	}
	return nil
}

func (r *QuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.Quest)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	n, err := r.rowsAffected("quests.Delete", apperr.EntityQuest, res, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("quests.Delete", apperr.EntityQuest, id)
	}
	return nil
}

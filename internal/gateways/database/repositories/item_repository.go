package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ItemRepository struct {
	BaseRepository
}

func NewItemRepository(db bun.IDB) *ItemRepository {
	return &ItemRepository{BaseRepository: NewBaseRepository(db)}
}

// Item operations

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewInsert().Model(item).Exec(ctx)
	return r.HandleError("items.Create", apperr.EntityItem, err)
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	item := new(models.Item)
	err := r.db.NewSelect().
		Model(item).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("items.GetByID", apperr.EntityItem, id, err)
	}
	return item, nil
}

// List orders by rarity, rarest first. A tier of 0 lists all tiers.
func (r *ItemRepository) List(ctx context.Context, tier, limit, offset int) ([]*models.Item, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	limit, offset = clampPage(limit, offset, config.DefaultPageSize, config.MaxPageSize)

	var items []*models.Item
	q := r.db.NewSelect().
		Model(&items).
		Order("rarity_tier DESC", "rarity_stars DESC", "name ASC").
		Limit(limit).
		Offset(offset)
	if tier > 0 {
		q = q.Where("rarity_tier = ?", tier)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, r.HandleError("items.List", apperr.EntityItem, err)
	}
	return items, nil
}

func (r *ItemRepository) ListByTier(ctx context.Context, tier int) ([]*models.Item, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var items []*models.Item
	err := r.db.NewSelect().
		Model(&items).
		Where("rarity_tier = ?", tier).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("items.ListByTier", apperr.EntityItem, err)
	}
	return items, nil
}

func (r *ItemRepository) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Item)(nil)).
		Set("image_url = ?", url).
		Where("id = ?", id).
		Exec(ctx)
	n, err := r.rowsAffected("items.SetImageURL", apperr.EntityItem, res, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("items.SetImageURL", apperr.EntityItem, id)
	}
	return nil
}

// User item operations

// AddUserItem records ownership. It is a no-op returning false when the
// user already owns the item.
func (r *ItemRepository) AddUserItem(ctx context.Context, ui *models.UserItem) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewInsert().
		Model(ui).
		On("CONFLICT (user_id, item_id) DO NOTHING").
		Exec(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	n, err := r.rowsAffected("items.AddUserItem", apperr.EntityUserItem, res, err)
	return n > 0, err
}

func (r *ItemRepository) HasItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.Exists(ctx, "items.HasItem", apperr.EntityUserItem,
		r.db.NewSelect().
			Model((*models.UserItem)(nil)).
			Where("user_id = ?", userID).
			Where("item_id = ?", itemID))
}

// ListUserItems returns owned items with catalog data, newest first.
func (r *ItemRepository) ListUserItems(ctx context.Context, userID uuid.UUID) ([]*models.UserItem, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var uis []*models.UserItem
	err := r.db.NewSelect().
		Model(&uis).
		Relation("Item").
		Where("ui.user_id = ?", userID).
		Order("ui.acquired_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("items.ListUserItems", apperr.EntityUserItem, err)
	}
	return uis, nil
}

func (r *ItemRepository) OwnedItemIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var ids []uuid.UUID
	err := r.db.NewSelect().
		Model((*models.UserItem)(nil)).
		Column("item_id").
		Where("user_id = ?", userID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, r.HandleError("items.OwnedItemIDs", apperr.EntityUserItem, err)
	}
	return ids, nil
}

func (r *ItemRepository) CountUserItems(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	return r.Count(ctx, "items.CountUserItems", apperr.EntityUserItem,
		r.db.NewSelect().
			Model((*models.UserItem)(nil)).
			Where("user_id = ?", userID))
}

// SetFeatured clears the user's featured flag and sets it on one owned item.
func (r *ItemRepository) SetFeatured(ctx context.Context, userID, userItemID uuid.UUID) (*models.UserItem, error) {
	featured := new(models.UserItem)
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.UserItem)(nil)).
			Where("id = ?", userItemID).
			Where("user_id = ?", userID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("items.SetFeatured", apperr.EntityUserItem, userItemID)
		}

		if _, err := tx.NewUpdate().
			Model((*models.UserItem)(nil)).
			Set("is_featured = ?", false).
			Where("user_id = ?", userID).
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().
			Model((*models.UserItem)(nil)).
			Set("is_featured = ?", true).
			Where("id = ?", userItemID).
			Exec(ctx); err != nil {
			return err
		}

		return tx.NewSelect().
			Model(featured).
			Relation("Item").
			Where("ui.id = ?", userItemID).
			Scan(ctx)
	})
	if err != nil {
		return nil, r.HandleErrorWithID("items.SetFeatured", apperr.EntityUserItem, userItemID, err)
	}
	return featured, nil
}

package items

import (
	"context"
	"time"

	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context, tier, limit, offset int) ([]*models.Item, error)
	ListByTier(ctx context.Context, tier int) ([]*models.Item, error)
	SetImageURL(ctx context.Context, id uuid.UUID, url string) error

	AddUserItem(ctx context.Context, ui *models.UserItem) (bool, error)
	HasItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
	ListUserItems(ctx context.Context, userID uuid.UUID) ([]*models.UserItem, error)
	OwnedItemIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	SetFeatured(ctx context.Context, userID, userItemID uuid.UUID) (*models.UserItem, error)
}

// Wallet is the glory balance a purchase draws from.
type Wallet interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	DeductGlory(ctx context.Context, id uuid.UUID, amount int64, at time.Time) (bool, error)
	RefundGlory(ctx context.Context, id uuid.UUID, amount int64, at time.Time) error
}

// CollectionChecker evaluates collection achievements after a purchase.
type CollectionChecker interface {
	CheckCollection(ctx context.Context, userID uuid.UUID) (*models.Achievement, error)
}

// ImageStore uploads item artwork and returns its public URL.
type ImageStore interface {
	UploadItemImage(ctx context.Context, itemID uuid.UUID, contentType string, data []byte) (string, error)
}

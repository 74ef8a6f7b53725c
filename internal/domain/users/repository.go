package users

import (
	"context"
	"time"

	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	IncrementStats(ctx context.Context, id uuid.UUID, gloryDelta, xpDelta, lifetimeDelta int64, at time.Time) (bool, error)
	SetLevel(ctx context.Context, id uuid.UUID, level int, observedXP int64) (bool, error)
}

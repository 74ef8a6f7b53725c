package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const sqlStateUniqueViolation = "23505"

type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db bun.IDB) *UserRepository {
	return &UserRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	if err != nil && isUniqueViolation(err) {
		return apperr.Newf(apperr.KindValidation, "users.Create", "username %q is already taken", user.Username)
	}
	return r.HandleError("users.Create", apperr.EntityUser, err)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("users.GetByID", apperr.EntityUser, id, err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("users.GetByUsername", apperr.EntityUser, username, err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	limit, offset = clampPage(limit, offset, config.DefaultPageSize, config.MaxPageSize)

	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Order("created_at ASC", "username ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("users.List", apperr.EntityUser, err)
	}
	return users, nil
}

// IncrementStats atomically adds the deltas to the running totals. The
// write is skipped (false) when either total would become negative.
func (r *UserRepository) IncrementStats(ctx context.Context, id uuid.UUID, gloryDelta, xpDelta, lifetimeDelta int64, at time.Time) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("total_glory = total_glory + ?", gloryDelta).
		Set("total_xp = total_xp + ?", xpDelta).
		Set("lifetime_glory_gained = lifetime_glory_gained + ?", lifetimeDelta).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Where("total_glory + ? >= 0", gloryDelta).
		Where("total_xp + ? >= 0", xpDelta).
		Exec(ctx)
	n, err := r.rowsAffected("users.IncrementStats", apperr.EntityUser, res, err)
	return n > 0, err
}

// SetLevel stores level only if total_xp still equals observedXP, so a
// stale reader never overwrites the level computed from newer xp.
func (r *UserRepository) SetLevel(ctx context.Context, id uuid.UUID, level int, observedXP int64) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("level = ?", level).
		Where("id = ?", id).
		Where("total_xp = ?", observedXP).
		Exec(ctx)
	n, err := r.rowsAffected("users.SetLevel", apperr.EntityUser, res, err)
	return n > 0, err
}

// DeductGlory spends amount if the balance covers it. Spending never
// touches lifetime_glory_gained.
func (r *UserRepository) DeductGlory(ctx context.Context, id uuid.UUID, amount int64, at time.Time) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("total_glory = total_glory - ?", amount).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Where("total_glory >= ?", amount).
		Exec(ctx)
	n, err := r.rowsAffected("users.DeductGlory", apperr.EntityUser, res, err)
	return n > 0, err
}

// RefundGlory returns spent glory without counting it as earned.
func (r *UserRepository) RefundGlory(ctx context.Context, id uuid.UUID, amount int64, at time.Time) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("total_glory = total_glory + ?", amount).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	n, err := r.rowsAffected("users.RefundGlory", apperr.EntityUser, res, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("users.RefundGlory", apperr.EntityUser, id)
	}
	return nil
}

func (r *UserRepository) SetActiveTitle(ctx context.Context, id uuid.UUID, achievementID *uuid.UUID, at time.Time) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("active_title_id = ?", achievementID).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	n, err := r.rowsAffected("users.SetActiveTitle", apperr.EntityUser, res, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("users.SetActiveTitle", apperr.EntityUser, id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == sqlStateUniqueViolation
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == sqlStateUniqueViolation
	}
	// sqlite reports constraint failures only in the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

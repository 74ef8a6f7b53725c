package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/config"
	"github.com/uptrace/bun"
)

// BaseRepository provides common repository functionality
type BaseRepository struct {
	db             bun.IDB
	defaultTimeout time.Duration
}

func NewBaseRepository(db bun.IDB) BaseRepository {
	return BaseRepository{
		db:             db,
		defaultTimeout: config.DefaultQueryTimeout,
	}
}

// WithTimeout creates a context with the default timeout
func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleError maps driver errors onto the application error kinds.
func (br *BaseRepository) HandleError(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &apperr.Error{Kind: apperr.KindNotFound, Op: operation, Entity: entity, Message: entity + " not found"}
	}
	return apperr.Transient(operation, entity, err)
}

// HandleErrorWithID is HandleError with the missing id in the message.
func (br *BaseRepository) HandleErrorWithID(operation, entity string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(operation, entity, id)
	}
	return apperr.Transient(operation, entity, err)
}

// Exists checks if a record exists
func (br *BaseRepository) Exists(ctx context.Context, operation, entity string, query *bun.SelectQuery) (bool, error) {
	exists, err := query.Exists(ctx)
	return exists, br.HandleError(operation, entity, err)
}

// Count returns the count of records matching the query
func (br *BaseRepository) Count(ctx context.Context, operation, entity string, query *bun.SelectQuery) (int, error) {
	count, err := query.Count(ctx)
	return count, br.HandleError(operation, entity, err)
}

// rowsAffected reads the affected row count of a write.
func (br *BaseRepository) rowsAffected(operation, entity string, res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, br.HandleError(operation, entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, br.HandleError(operation, entity, err)
	}
	return n, nil
}

// Transaction executes a function within a database transaction
func (br *BaseRepository) Transaction(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	return br.db.RunInTx(timeoutCtx, nil, fn)
}

func clampPage(limit, offset, def, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

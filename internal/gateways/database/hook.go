package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/embark-app/embark/internal/logger"
	"github.com/uptrace/bun"
)

// QueryHook logs every bun query. Missing rows are an expected outcome
// and are logged as successes.
type QueryHook struct{}

var _ bun.QueryHook = QueryHook{}

func (QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	err := event.Err
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	logger.LogQuery(event.Query, time.Since(event.StartTime), err)
}

package users

import (
	"context"
	"log/slog"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/domain/leveling"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
)

// Ledger applies glory and xp deltas to a user and keeps the stored level
// consistent with total xp.
type Ledger struct {
	repository Repository
	clock      clock.Clock
}

func NewLedger(repository Repository, clk clock.Clock) *Ledger {
	return &Ledger{repository: repository, clock: clk}
}

// ApplyDelta adds the deltas atomically. Only positive glory counts toward
// lifetime glory. Deltas that would make either total negative fail with
// ValidationFailed and change nothing.
func (l *Ledger) ApplyDelta(ctx context.Context, userID uuid.UUID, gloryDelta, xpDelta int64) (*models.User, error) {
	const op = "ledger.ApplyDelta"

	lifetimeDelta := max(gloryDelta, 0)
	applied, err := l.repository.IncrementStats(ctx, userID, gloryDelta, xpDelta, lifetimeDelta, l.clock.Now())
	if err != nil {
		return nil, err
	}

	user, err := l.repository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperr.Newf(apperr.KindValidation, op,
			"delta (glory %d, xp %d) would make a total negative", gloryDelta, xpDelta)
	}

	level := leveling.LevelForXP(user.TotalXP)
	if level != user.Level {
		// Conditional on the xp we read; a concurrent writer that moved xp
		// again recomputes the level itself.
		if _, err := l.repository.SetLevel(ctx, userID, level, user.TotalXP); err != nil {
			return nil, err
		}
		if level > user.Level {
			slog.Info("User leveled up",
				slog.String("type", "quest"),
				slog.String("user_id", userID.String()),
				slog.Int("from", user.Level),
				slog.Int("to", level),
			)
		}
		user.Level = level
	}

	return user, nil
}

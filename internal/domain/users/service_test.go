package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/gateways/database/repositories"
	"github.com/embark-app/embark/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Create(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "rowan", false},
		{"trimmed", "  sage  ", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("x", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewDB(t)
			s := NewService(repositories.NewUserRepository(db), testutil.NewClock(testutil.DefaultStart))

			user, err := s.Create(context.Background(), tt.username)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Service.Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperr.ErrValidation))
				return
			}
			assert.Equal(t, strings.TrimSpace(tt.username), user.Username)
			assert.Equal(t, 1, user.Level)
			assert.Equal(t, testutil.DefaultStart, user.CreatedAt)
		})
	}
}

func TestService_Profile(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository(db)
	clk := testutil.NewClock(testutil.DefaultStart)
	s := NewService(repo, clk)
	ledger := NewLedger(repo, clk)

	user, err := s.Create(ctx, "sol")
	require.NoError(t, err)
	_, err = ledger.ApplyDelta(ctx, user.ID, 0, 450)
	require.NoError(t, err)

	profile, err := s.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Level)
	assert.Equal(t, 2, profile.Progress.Level)
	assert.Equal(t, int64(150), profile.Progress.XPIntoLevel)
	assert.Equal(t, int64(171), profile.Progress.XPToNextLevel)

	byName, err := s.GetByUsername(ctx, "sol")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	list, err := s.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

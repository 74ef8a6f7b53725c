package users

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/domain/leveling"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
)

type Service struct {
	repository Repository
	clock      clock.Clock
}

func NewService(repository Repository, clk clock.Clock) *Service {
	return &Service{repository: repository, clock: clk}
}

// Profile is a user with level progress derived from total xp.
type Profile struct {
	*models.User
	Progress leveling.Progress `json:"progress"`
}

func (s *Service) Create(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < config.MinUsernameLength || n > config.MaxUsernameLength {
		return nil, apperr.Newf(apperr.KindValidation, "users.Create",
			"username must be %d to %d characters", config.MinUsernameLength, config.MaxUsernameLength)
	}

	now := s.clock.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User created",
		slog.String("type", "sys"),
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)
	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repository.GetByUsername(ctx, username)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repository.List(ctx, limit, offset)
}

func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	user, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Progress: leveling.ProgressFor(user.TotalXP)}, nil
}

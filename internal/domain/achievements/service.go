package achievements

import (
	"context"

	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/google/uuid"
)

// Service lists achievements and manages the user's displayed title.
type Service struct {
	repository Repository
	users      TitleHolder
	clock      clock.Clock
}

func NewService(repository Repository, users TitleHolder, clk clock.Clock) *Service {
	return &Service{repository: repository, users: users, clock: clk}
}

func (s *Service) List(ctx context.Context) ([]*models.Achievement, error) {
	return s.repository.List(ctx)
}

func (s *Service) UserAchievements(ctx context.Context, userID uuid.UUID) ([]*models.UserAchievement, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repository.ListUserAchievements(ctx, userID)
}

// SetActiveTitle sets the displayed title, or clears it when achievementID
// is nil. It returns false, changing nothing, when the user has not
// unlocked the achievement.
func (s *Service) SetActiveTitle(ctx context.Context, userID uuid.UUID, achievementID *uuid.UUID) (bool, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return false, err
	}

	if achievementID != nil {
		held, err := s.repository.HasUnlocked(ctx, userID, *achievementID)
		if err != nil {
			return false, err
		}
		if !held {
			return false, nil
		}
	}

	if err := s.users.SetActiveTitle(ctx, userID, achievementID, s.clock.Now()); err != nil {
		return false, err
	}
	return true, nil
}

// ActiveTitle returns the user's displayed achievement, or nil if none is set.
func (s *Service) ActiveTitle(ctx context.Context, userID uuid.UUID) (*models.Achievement, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ActiveTitleID == nil {
		return nil, nil
	}
	achievement, err := optional(s.repository.GetByID(ctx, *user.ActiveTitleID))
	if err != nil {
		return nil, err
	}
	return achievement, nil
}

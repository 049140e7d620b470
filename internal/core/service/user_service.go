package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
)

type userService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{users: users, log: log}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*ports.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.Profile{User: user, CompletionYear: user.CompletionYear()}, nil
}

// UpdateInterests replaces the interest set wholesale. Tags are stored as given.
func (s *userService) UpdateInterests(ctx context.Context, userID string, interests []string) (*domain.User, error) {
	if interests == nil {
		interests = []string{}
	}
	user, err := s.users.UpdateInterests(ctx, userID, interests)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("user_id", userID).Int("count", len(interests)).Msg("interests updated")
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.IsEmpty() {
		return s.users.FindByID(ctx, userID)
	}
	if update.EnrollYear != nil && *update.EnrollYear <= 0 {
		return nil, domain.NewValidationError("enrollYear must be greater than 0")
	}
	return s.users.UpdateProfile(ctx, userID, update)
}

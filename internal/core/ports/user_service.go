package ports

import (
	"context"

	"github.com/campusevents/event-platform/internal/core/domain"
)

// Profile is a user record together with its derived completion year.
type Profile struct {
	*domain.User
	CompletionYear *int `json:"completionYear"`
}

// UserService exposes the caller's own profile.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateInterests(ctx context.Context, userID string, interests []string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/campusevents/event-platform/internal/core/domain"
)

// RegisterInput carries the sign-up form. Only Name, Email and Password are required.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	RollNo      string
	CollegeName string
	Branch      string
	Course      string
	Interests   []string
	EnrollYear  *int
	Address     string
	ProfilePic  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

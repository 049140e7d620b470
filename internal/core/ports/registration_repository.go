package ports

import (
	"context"

	"github.com/campusevents/event-platform/internal/core/domain"
)

// RegistrationRepository persists (student, event) pairs.
type RegistrationRepository interface {
	// Create inserts the pair. Returns domain.ErrAlreadyRegistered when it exists.
	Create(ctx context.Context, reg *domain.Registration) error
	Delete(ctx context.Context, studentID, eventID string) error
	// ListByStudent returns the student's registrations, oldest first.
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Registration, error)
}

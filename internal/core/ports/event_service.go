package ports

import (
	"context"
	"time"

	"github.com/campusevents/event-platform/internal/core/domain"
)

// CreateEventInput is the DTO passed from the transport layer to EventService.
type CreateEventInput struct {
	Title       string
	Description string
	Category    string
	Date        time.Time
	Venue       string
	Capacity    int
	OrganizerID string
}

// EventService is the event catalog.
type EventService interface {
	Create(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	ListAll(ctx context.Context) ([]*domain.EventWithOrganizer, error)
	ListAvailable(ctx context.Context) ([]*domain.Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error)
}

// RegistrationService is the registration ledger.
type RegistrationService interface {
	Register(ctx context.Context, studentID, eventID string) error
	ListMine(ctx context.Context, studentID string) ([]*domain.Event, error)
}

// RecommendationService selects events a student may want to attend.
type RecommendationService interface {
	Recommend(ctx context.Context, studentID string) ([]*domain.Event, error)
}

package ports

import (
	"context"

	"github.com/campusevents/event-platform/internal/core/domain"
)

// EventRepository handles event persistence and the guarded seat counter.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// FindByIDs returns the events that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	// ListAvailable returns events whose registered count is below capacity.
	ListAvailable(ctx context.Context) ([]*domain.Event, error)
	// ListByOrganizer returns the organizer's events, newest first.
	ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error)
	// ListPopular returns events not in excludeIDs ordered by registered count
	// descending. An empty categories slice disables the category filter and
	// limit <= 0 means unbounded.
	ListPopular(ctx context.Context, categories, excludeIDs []string, limit int) ([]*domain.Event, error)

	// IncrementRegistered adds one seat only while registered count is below
	// capacity. It reports false when the event is already full.
	IncrementRegistered(ctx context.Context, id string) (bool, error)
}

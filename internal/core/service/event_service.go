package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
	"github.com/campusevents/event-platform/internal/pkg/metrics"
)

type eventService struct {
	events ports.EventRepository
	users  ports.UserRepository
	log    zerolog.Logger
}

// NewEventService returns the event catalog.
func NewEventService(events ports.EventRepository, users ports.UserRepository, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, users: users, log: log}
}

// Create stores a new event owned by in.OrganizerID with no seats taken.
func (s *eventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Date:        in.Date.UTC(),
		Venue:       in.Venue,
		Capacity:    in.Capacity,
		OrganizerID: in.OrganizerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Str("organizer_id", in.OrganizerID).Msg("failed to create event")
		return nil, fmt.Errorf("create event: %w", err)
	}

	metrics.EventsCreatedTotal.WithLabelValues(created.Category).Inc()
	s.log.Info().
		Str("event_id", created.ID).
		Str("organizer_id", created.OrganizerID).
		Int("capacity", created.Capacity).
		Msg("event created")

	return created, nil
}

func validateEventInput(in ports.CreateEventInput) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if in.Date.IsZero() {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(in.Venue) == "" {
		missing = append(missing, "venue")
	}
	if len(missing) > 0 {
		return domain.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	if in.Capacity < 0 {
		return domain.NewValidationError("capacity must be at least 0")
	}
	if in.OrganizerID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// ListAll returns every event with its organizer expanded to name and email.
func (s *eventService) ListAll(ctx context.Context) ([]*domain.EventWithOrganizer, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	ids := make([]string, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, e := range events {
		if _, ok := seen[e.OrganizerID]; ok {
			continue
		}
		seen[e.OrganizerID] = struct{}{}
		ids = append(ids, e.OrganizerID)
	}

	organizers := make(map[string]*domain.Organizer, len(ids))
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list events: load organizers: %w", err)
		}
		for _, u := range users {
			organizers[u.ID] = &domain.Organizer{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}

	out := make([]*domain.EventWithOrganizer, len(events))
	for i, e := range events {
		out[i] = &domain.EventWithOrganizer{Event: *e, Organizer: organizers[e.OrganizerID]}
	}
	return out, nil
}

func (s *eventService) ListAvailable(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.events.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	events, err := s.events.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list organizer events: %w", err)
	}
	return events, nil
}

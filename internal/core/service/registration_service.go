package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
	"github.com/campusevents/event-platform/internal/pkg/metrics"
	"github.com/campusevents/event-platform/pkg/logger"
)

// RegistrationGuard abstracts the fast-path duplicate marker (Redis).
// It is advisory: the unique index on registrations stays authoritative.
type RegistrationGuard interface {
	IsRegistered(ctx context.Context, studentID, eventID string) (bool, error)
	Mark(ctx context.Context, studentID, eventID string) error
}

type registrationService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	guard         RegistrationGuard
	log           zerolog.Logger
}

// NewRegistrationService returns the registration ledger.
func NewRegistrationService(
	events ports.EventRepository,
	registrations ports.RegistrationRepository,
	guard RegistrationGuard,
	log zerolog.Logger,
) ports.RegistrationService {
	return &registrationService{
		events:        events,
		registrations: registrations,
		guard:         guard,
		log:           log,
	}
}

// Register books one seat of eventID for studentID.
//
// The seat counter is only ever moved by a conditional increment that
// re-checks capacity, and the pair is protected by a unique index, so
// concurrent calls can neither overbook nor double-register.
func (s *registrationService) Register(ctx context.Context, studentID, eventID string) error {
	// 1. Event must exist.
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			metrics.RegistrationsTotal.WithLabelValues(metrics.ResultNotFound).Inc()
			return err
		}
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("register: %w", err)
	}

	// 2. Cheap capacity check on the snapshot.
	if event.IsFull() {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultFull).Inc()
		return domain.ErrEventFull
	}

	// 3. Fast duplicate check. Failures fall through to the unique index.
	if s.guard != nil {
		dup, err := s.guard.IsRegistered(ctx, studentID, event.ID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("event_id", event.ID).Msg("registration guard check failed, continuing")
		case dup:
			metrics.RegistrationGuardTotal.WithLabelValues("hit").Inc()
			metrics.RegistrationsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
			return domain.ErrAlreadyRegistered
		default:
			metrics.RegistrationGuardTotal.WithLabelValues("miss").Inc()
		}
	}

	// 4. Claim the pair.
	reg := &domain.Registration{
		StudentID: studentID,
		EventID:   event.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			metrics.RegistrationsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
			s.markGuard(ctx, studentID, event.ID)
			return err
		}
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("register: insert registration: %w", err)
	}

	// 5. Take the seat; give the pair back if the last one went meanwhile.
	ok, err := s.events.IncrementRegistered(ctx, event.ID)
	if err != nil || !ok {
		if delErr := s.registrations.Delete(ctx, studentID, event.ID); delErr != nil {
			s.log.Error().Err(delErr).
				Str("event_id", event.ID).
				Str("student_id", studentID).
				Msg("failed to release registration after seat claim failed")
		}
		if err != nil {
			metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
			return fmt.Errorf("register: increment seats: %w", err)
		}
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultFull).Inc()
		return domain.ErrEventFull
	}

	s.markGuard(ctx, studentID, event.ID)
	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultRegistered).Inc()

	logger.Ctx(ctx, s.log).Info().
		Str("event_id", event.ID).
		Str("student_id", studentID).
		Msg("student registered")

	return nil
}

func (s *registrationService) markGuard(ctx context.Context, studentID, eventID string) {
	if s.guard == nil {
		return
	}
	if err := s.guard.Mark(ctx, studentID, eventID); err != nil {
		s.log.Warn().Err(err).Str("event_id", eventID).Msg("failed to set registration guard")
	}
}

// ListMine returns the events the student registered for, in registration order.
func (s *registrationService) ListMine(ctx context.Context, studentID string) ([]*domain.Event, error) {
	regs, err := s.registrations.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if len(regs) == 0 {
		return []*domain.Event{}, nil
	}

	ids := make([]string, len(regs))
	for i, r := range regs {
		ids[i] = r.EventID
	}

	events, err := s.events.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list registrations: load events: %w", err)
	}

	byID := make(map[string]*domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	out := make([]*domain.Event, 0, len(regs))
	for _, r := range regs {
		if e, ok := byID[r.EventID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
	"github.com/campusevents/event-platform/internal/pkg/metrics"
)

// popularFallbackLimit caps the fallback list when interests match nothing.
const popularFallbackLimit = 5

type recommendationService struct {
	users         ports.UserRepository
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	log           zerolog.Logger
}

// NewRecommendationService returns a RecommendationService implementation.
func NewRecommendationService(
	users ports.UserRepository,
	events ports.EventRepository,
	registrations ports.RegistrationRepository,
	log zerolog.Logger,
) ports.RecommendationService {
	return &recommendationService{
		users:         users,
		events:        events,
		registrations: registrations,
		log:           log,
	}
}

// Recommend returns unregistered events in the student's interest categories,
// most popular first. When none match it falls back to the most popular
// unregistered events overall.
func (s *recommendationService) Recommend(ctx context.Context, studentID string) ([]*domain.Event, error) {
	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	regs, err := s.registrations.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("recommend: list registrations: %w", err)
	}
	registered := make([]string, len(regs))
	for i, r := range regs {
		registered[i] = r.EventID
	}

	if len(student.Interests) > 0 {
		matched, err := s.events.ListPopular(ctx, student.Interests, registered, 0)
		if err != nil {
			return nil, fmt.Errorf("recommend: by interests: %w", err)
		}
		if len(matched) > 0 {
			metrics.RecommendationsServedTotal.WithLabelValues("interests").Inc()
			return matched, nil
		}
	}

	popular, err := s.events.ListPopular(ctx, nil, registered, popularFallbackLimit)
	if err != nil {
		return nil, fmt.Errorf("recommend: popular: %w", err)
	}

	metrics.RecommendationsServedTotal.WithLabelValues("popular").Inc()
	s.log.Debug().Str("student_id", studentID).Int("count", len(popular)).Msg("served popular fallback")
	return popular, nil
}

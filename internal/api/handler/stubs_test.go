package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campusevents/event-platform/internal/api/middleware"
	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubEventService struct {
	createFn          func(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error)
	listAllFn         func(ctx context.Context) ([]*domain.EventWithOrganizer, error)
	listAvailableFn   func(ctx context.Context) ([]*domain.Event, error)
	listByOrganizerFn func(ctx context.Context, organizerID string) ([]*domain.Event, error)
}

func (s *stubEventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	return s.createFn(ctx, in)
}

func (s *stubEventService) ListAll(ctx context.Context) ([]*domain.EventWithOrganizer, error) {
	return s.listAllFn(ctx)
}

func (s *stubEventService) ListAvailable(ctx context.Context) ([]*domain.Event, error) {
	return s.listAvailableFn(ctx)
}

func (s *stubEventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return s.listByOrganizerFn(ctx, organizerID)
}

type stubRegistrationService struct {
	registerFn func(ctx context.Context, studentID, eventID string) error
	listMineFn func(ctx context.Context, studentID string) ([]*domain.Event, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, studentID, eventID string) error {
	return s.registerFn(ctx, studentID, eventID)
}

func (s *stubRegistrationService) ListMine(ctx context.Context, studentID string) ([]*domain.Event, error) {
	return s.listMineFn(ctx, studentID)
}

type stubRecommendationService struct {
	recommendFn func(ctx context.Context, studentID string) ([]*domain.Event, error)
}

func (s *stubRecommendationService) Recommend(ctx context.Context, studentID string) ([]*domain.Event, error) {
	return s.recommendFn(ctx, studentID)
}

type stubUserService struct {
	getProfileFn      func(ctx context.Context, userID string) (*ports.Profile, error)
	updateInterestsFn func(ctx context.Context, userID string, interests []string) (*domain.User, error)
	updateProfileFn   func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}

func (s *stubUserService) GetProfile(ctx context.Context, userID string) (*ports.Profile, error) {
	return s.getProfileFn(ctx, userID)
}

func (s *stubUserService) UpdateInterests(ctx context.Context, userID string, interests []string) (*domain.User, error) {
	return s.updateInterestsFn(ctx, userID, interests)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, update)
}

// newContext builds an echo context with the validator installed. A non-empty
// userID simulates a request that already passed Auth.
func newContext(t *testing.T, method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.ContextUserID, userID)
	}
	return c, rec
}

func intPtr(v int) *int { return &v }


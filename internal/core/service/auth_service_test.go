package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
)

func newAuthSvc(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, "secret", 0, discardLogger)
}

func parseToken(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	year := 2023
	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:       "Alice",
		Email:      "Alice@Example.com ",
		Password:   "pass123",
		EnrollYear: &year,
		Interests:  []string{"tech"},
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected user with id, got %+v", user)
	}
	if user.Role != domain.RoleStudent {
		t.Fatalf("expected default role student, got %s", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := parseToken(t, token, "secret")
	if claims["id"] != user.ID || claims["role"] != domain.RoleStudent {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_TokenExpiresInSevenDays(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	token, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "a", Email: "a@x.io", Password: "p"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims := parseToken(t, token, "secret")
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp: %v", err)
	}
	want := time.Now().Add(7 * 24 * time.Hour)
	if d := exp.Sub(want); d > time.Minute || d < -time.Minute {
		t.Fatalf("expected expiry near %v, got %v", want, exp.Time)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	cases := []ports.RegisterInput{
		{Email: "a@x.io", Password: "p"},
		{Name: "a", Password: "p"},
		{Name: "a", Email: "a@x.io"},
		{Name: "a", Email: "a@x.io", Password: "p", Role: "superuser"},
	}
	for _, in := range cases {
		if _, _, err := svc.Register(context.Background(), in); !domain.IsValidation(err) {
			t.Errorf("input %+v: expected validation error, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	in := ports.RegisterInput{Name: "bob", Email: "bob@example.com", Password: "pass"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "carol", Email: "carol@example.com", Password: "s3cret", Role: domain.RoleOrganizer,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Name != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := parseToken(t, token, "secret")
	if claims["role"] != domain.RoleOrganizer {
		t.Fatalf("expected role %s, got %v", domain.RoleOrganizer, claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "dave", Email: "dave@example.com", Password: "goodpass"})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "", "pass"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = errStore
	svc := newAuthSvc(repo)

	if _, _, err := svc.Login(context.Background(), "a@x.io", "pass"); !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}

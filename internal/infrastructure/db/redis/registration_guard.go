package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultGuardTTL bounds how long a registration marker is trusted.
const DefaultGuardTTL = 24 * time.Hour

// RegistrationGuard remembers (student, event) pairs that already hold a seat,
// letting repeat registrations be rejected without touching MongoDB.
// Key format: registration:<student_id>:<event_id>
type RegistrationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationGuard wraps client. A non-positive ttl falls back to DefaultGuardTTL.
func NewRegistrationGuard(client *redis.Client, ttl time.Duration) *RegistrationGuard {
	if ttl <= 0 {
		ttl = DefaultGuardTTL
	}
	return &RegistrationGuard{client: client, ttl: ttl}
}

// IsRegistered reports whether the pair has been marked.
func (g *RegistrationGuard) IsRegistered(ctx context.Context, studentID, eventID string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(studentID, eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("registration guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records the pair (expires after the guard TTL).
func (g *RegistrationGuard) Mark(ctx context.Context, studentID, eventID string) error {
	if err := g.client.Set(ctx, g.key(studentID, eventID), "1", g.ttl).Err(); err != nil {
		return fmt.Errorf("registration guard mark: %w", err)
	}
	return nil
}

func (g *RegistrationGuard) key(studentID, eventID string) string {
	return fmt.Sprintf("registration:%s:%s", studentID, eventID)
}

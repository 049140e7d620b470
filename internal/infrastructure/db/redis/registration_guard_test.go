package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRegistrationGuard_DefaultTTL(t *testing.T) {
	g := NewRegistrationGuard(nil, 0)
	if g.ttl != DefaultGuardTTL {
		t.Fatalf("expected default ttl, got %s", g.ttl)
	}
	if g := NewRegistrationGuard(nil, time.Minute); g.ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %s", g.ttl)
	}
}

func TestRegistrationGuard_Key(t *testing.T) {
	g := NewRegistrationGuard(nil, 0)
	if got := g.key("s1", "e1"); got != "registration:s1:e1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRegistrationGuard_UnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	g := NewRegistrationGuard(client, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := g.IsRegistered(ctx, "s1", "e1"); err == nil {
		t.Fatal("expected error from unreachable server")
	}
	if err := g.Mark(ctx, "s1", "e1"); err == nil {
		t.Fatal("expected error from unreachable server")
	}
}

func TestConfig_Options(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "pw", DB: 2, PoolSize: 4, OpTimeout: time.Second}.options()
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 || opts.PoolSize != 4 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.ReadTimeout != time.Second || opts.WriteTimeout != time.Second {
		t.Fatalf("op timeout not applied: read=%s write=%s", opts.ReadTimeout, opts.WriteTimeout)
	}

	if d := (Config{Addr: "x"}).options(); d.ReadTimeout != 0 || d.WriteTimeout != 0 {
		t.Fatalf("zero op timeout should keep defaults, got %+v", d)
	}
}

func TestConnect_EmptyAddr(t *testing.T) {
	if _, err := Connect(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

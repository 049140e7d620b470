package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day token TTL, got %s", cfg.TokenTTL)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("unexpected mongo uri %q", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "college_events" {
		t.Errorf("unexpected mongo db %q", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected redis addr %q", cfg.Redis.Addr)
	}
	if cfg.Redis.OpTimeout != 500*time.Millisecond {
		t.Errorf("unexpected redis op timeout %s", cfg.Redis.OpTimeout)
	}
	if cfg.Redis.GuardTTL != 24*time.Hour {
		t.Errorf("unexpected guard ttl %s", cfg.Redis.GuardTTL)
	}
	if cfg.AuthRateLimit != 10 {
		t.Errorf("unexpected auth rate limit %v", cfg.AuthRateLimit)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development environment by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"PORT":       "9090",
		"ENV":        "production",
		"TOKEN_TTL":  "1h",
		"MONGO_URI":  "mongodb://db:27017",
		"MONGO_DB":   "events_test",
		"REDIS_DB":   "3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.Env != "production" {
		t.Errorf("unexpected port/env: %q %q", cfg.Port, cfg.Env)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected 1h token TTL, got %s", cfg.TokenTTL)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" || cfg.Mongo.Database != "events_test" {
		t.Errorf("unexpected mongo config: %+v", cfg.Mongo)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.IsDevelopment() {
		t.Error("production must not report development")
	}
}

func TestLoadWith_MissingSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestConfig_IsDevelopmentIgnoresCase(t *testing.T) {
	for env, want := range map[string]bool{"development": true, "Development": true, "production": false, "": false} {
		if got := (&Config{Env: env}).IsDevelopment(); got != want {
			t.Errorf("Env=%q: expected %v, got %v", env, want, got)
		}
	}
}

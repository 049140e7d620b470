// Package logger owns the process-wide zerolog logger of the event platform.
//
// Call Init once from main. Code that has no logger injected can use Get or
// Component, and request-scoped code should prefer Ctx so that entries carry
// the request id attached by the HTTP layer.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "event-platform"

// Options controls how Init builds the logger.
type Options struct {
	// Level is a zerolog level name. Empty or unknown values mean info.
	Level string
	// Pretty switches to zerolog's console writer.
	Pretty bool
	// Service, when set, is added to every entry.
	Service string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// ForEnv returns the Options for a deployment: console output in
// development, JSON elsewhere.
func ForEnv(development bool, level string) Options {
	return Options{
		Level:   level,
		Pretty:  development,
		Service: serviceName,
	}
}

var (
	mu       sync.RWMutex
	root     zerolog.Logger
	ready    bool
	initOnce sync.Once
)

// Init builds the root logger. Calls after the first return it unchanged.
func Init(opts Options) zerolog.Logger {
	initOnce.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		l := zerolog.New(writer(opts)).Level(lvl).With().Timestamp().Caller()
		if opts.Service != "" {
			l = l.Str("service", opts.Service)
		}

		mu.Lock()
		root, ready = l.Logger(), true
		mu.Unlock()
	})
	return Get()
}

func writer(opts Options) io.Writer {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return out
}

// Get returns the root logger. It panics before Init.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !ready {
		panic("logger: Get() called before Init()")
	}
	return root
}

// Component returns the root logger tagged with component=name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// WithContext stores l in ctx for later retrieval with Ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// Ctx returns the logger stored in ctx, or fallback when there is none.
func Ctx(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &fallback
}

// Reset drops the root logger so Init can run again. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	initOnce = sync.Once{}
	root, ready = zerolog.Logger{}, false
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

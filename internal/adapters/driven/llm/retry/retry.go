// Package retry wraps an LLM service with bounded retries and a proactive
// request throttle. Providers rate-limit aggressively; a conversation turn
// makes two calls (classification plus generation), so the wrapper smooths
// bursts before they happen and backs off when they happen anyway.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.LLMService = (*Service)(nil)

// Default configuration values.
const (
	DefaultMaxRetries = 3

	// DefaultRequestsPerSecond caps outbound calls. Two requests per
	// second comfortably fits every provider's free tier.
	DefaultRequestsPerSecond = 2
)

// Config holds retry configuration.
type Config struct {
	// MaxRetries is the number of attempts per call (default: 3).
	MaxRetries int

	// RequestsPerSecond caps the outbound request rate (default: 2).
	// Zero uses the default; a negative value disables the throttle.
	RequestsPerSecond float64
}

// Service decorates a driven.LLMService with retries and throttling.
type Service struct {
	inner      driven.LLMService
	maxRetries int
	limiter    *rate.Limiter

	// sleep is swapped out by tests.
	sleep func(time.Duration)
}

// NewService wraps the inner LLM service.
func NewService(inner driven.LLMService, cfg Config) *Service {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond >= 0 {
		rps := cfg.RequestsPerSecond
		if rps == 0 {
			rps = DefaultRequestsPerSecond
		}
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &Service{
		inner:      inner,
		maxRetries: cfg.MaxRetries,
		limiter:    limiter,
		sleep:      time.Sleep,
	}
}

// Chat calls the inner service, retrying with exponential backoff. Rate
// limit failures wait an extra half second per attempt on top of the
// exponential term. After the last attempt the error wraps
// domain.ErrService and carries the final cause.
func (s *Service) Chat(ctx context.Context, messages []driven.ChatMessage) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		reply, err := s.inner.Chat(ctx, messages)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if attempt == s.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		wait := backoff(attempt, errors.Is(err, domain.ErrRateLimited))
		logger.Warn("LLM call failed (attempt %d/%d), retrying in %s: %v", attempt, s.maxRetries, wait, err)
		s.sleep(wait)
	}

	return "", fmt.Errorf("%w: failed after %d attempts: %w", domain.ErrService, s.maxRetries, lastErr)
}

// backoff computes the wait before the next attempt: 2^attempt seconds,
// plus attempt * 0.5s extra when the provider rate-limited us.
func backoff(attempt int, rateLimited bool) time.Duration {
	seconds := math.Pow(2, float64(attempt))
	if rateLimited {
		seconds += float64(attempt) * 0.5
	}
	return time.Duration(seconds * float64(time.Second))
}

// ModelName returns the inner service's model name.
func (s *Service) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates to the inner service without retrying; startup checks
// should fail fast.
func (s *Service) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the inner service's resources.
func (s *Service) Close() error {
	return s.inner.Close()
}

package tasks

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/sablewood/rymx/internal/shared"
)

// Pacer throttles outbound catalog calls.
//
// Wait blocks until the next call is allowed or the context is done.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedPacer sleeps a fixed delay between calls.
type FixedPacer struct {
	delay time.Duration
}

// NewFixedPacer creates a pacer with a constant inter-call delay.
func NewFixedPacer(delay time.Duration) *FixedPacer {
	return &FixedPacer{delay: delay}
}

func (p *FixedPacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LimiterPacer throttles with a token bucket via [rate.Limiter].
type LimiterPacer struct {
	limiter *rate.Limiter
}

// NewLimiterPacer creates a pacer allowing requestsPerSecond sustained calls
// with a burst of one.
func NewLimiterPacer(requestsPerSecond float64) *LimiterPacer {
	return &LimiterPacer{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1)}
}

func (p *LimiterPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NopPacer never throttles. Used in tests and against mock catalogs.
type NopPacer struct{}

func (NopPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}

// NewPacer builds a [Pacer] from pacing configuration. Unknown policies fall
// back to the fixed delay pacer.
func NewPacer(cfg shared.PacingConfig) Pacer {
	switch cfg.Policy {
	case "limiter":
		rps := cfg.RequestsPerSecond
		if rps <= 0 {
			rps = 4.0
		}
		return NewLimiterPacer(rps)
	case "none":
		return NopPacer{}
	default:
		delay := time.Duration(cfg.DelayMS) * time.Millisecond
		if cfg.DelayMS <= 0 {
			delay = 250 * time.Millisecond
		}
		return NewFixedPacer(delay)
	}
}

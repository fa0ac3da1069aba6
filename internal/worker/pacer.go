// Package worker provides the pacing policy between source fetches.
package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer gates the start of each source iteration. Injectable so tests
// can disable the delay.
type Pacer interface {
	Wait(ctx context.Context) error
}

// RatePacer spaces iterations at a fixed interval using a token bucket
type RatePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer creates a pacer allowing one iteration per interval
func NewRatePacer(interval time.Duration) *RatePacer {
	if interval <= 0 {
		interval = time.Second
	}
	return &RatePacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next iteration may start
func (p *RatePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NopPacer applies no delay, for tests
type NopPacer struct{}

// Wait returns immediately
func (NopPacer) Wait(context.Context) error { return nil }

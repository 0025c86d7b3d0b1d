package pipeline

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next outbound call may proceed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer returns a token bucket allowing perSecond calls per second with
// a burst of one. A non-positive rate disables pacing.
func NewPacer(perSecond float64) Pacer {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

package behaviors

import (
	"context"

	"golang.org/x/time/rate"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// RateLimit returns a behavior that waits for limiter capacity before
// anything downstream runs. All requests passing through it share one
// limiter. Context errors during the wait surface unchanged.
func RateLimit(limit rate.Limit, burst int) cmed.PipelineBehavior {
	limiter := rate.NewLimiter(limit, burst)

	return cmed.PipelineBehaviorFunc(func(ctx context.Context, req cmed.Request, next cmed.Next) (any, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		return next()
	})
}

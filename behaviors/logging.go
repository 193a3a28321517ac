package behaviors

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// Logging returns a behavior that records every dispatch with its duration.
// Successful dispatches log at debug level, faults at error level. A nil
// logger discards.
func Logging(logger *slog.Logger) cmed.PipelineBehavior {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return cmed.PipelineBehaviorFunc(func(ctx context.Context, req cmed.Request, next cmed.Next) (any, error) {
		logger.DebugContext(ctx, "dispatch", "request", fmt.Sprintf("%T", req))

		start := time.Now()

		res, err := next()
		if err != nil {
			logger.ErrorContext(ctx, "dispatch failed",
				"request", fmt.Sprintf("%T", req), "elapsed", time.Since(start), "err", err)

			return res, err
		}

		logger.DebugContext(ctx, "dispatch done",
			"request", fmt.Sprintf("%T", req), "elapsed", time.Since(start))

		return res, nil
	})
}

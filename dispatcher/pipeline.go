package dispatcher

import (
	"context"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// compose folds the behaviors around the terminal handler invocation.
// Composition allocates the chain but runs nothing; the work happens when the
// returned continuation is invoked, and invoking it again re-executes the
// wrapped chain.
func compose(
	ctx context.Context,
	req cmed.Request,
	behaviors []cmed.PipelineBehavior,
	terminal cmed.RequestFunc,
) cmed.Next {
	next := cmed.Next(func() (any, error) { return terminal(ctx, req) })

	// Fold in reverse so the first registered behavior runs outermost.
	for i := len(behaviors) - 1; i >= 0; i-- {
		b := behaviors[i]
		inner := next
		next = func() (any, error) { return b.Handle(ctx, req, inner) }
	}

	return next
}

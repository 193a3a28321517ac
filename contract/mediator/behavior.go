package mediator

import "context"

// Next continues the pipeline with the remainder of the chain: the behaviors
// registered after the current one, then the handler. A behavior that never
// calls it short-circuits the dispatch; calling it more than once re-executes
// the downstream chain.
type Next func() (any, error)

// PipelineBehavior wraps request dispatch with cross-cutting logic. One form
// serves both shapes; for void requests the composed result is always nil.
//
// Behaviors run in registration order with the first registered outermost.
// A behavior may inspect req, replace the result or error from next(), or
// skip next() entirely. Implementations must be safe for concurrent use.
type PipelineBehavior interface {
	Handle(ctx context.Context, req Request, next Next) (any, error)
}

// PipelineBehaviorFunc adapts a plain function to PipelineBehavior.
type PipelineBehaviorFunc func(ctx context.Context, req Request, next Next) (any, error)

func (f PipelineBehaviorFunc) Handle(ctx context.Context, req Request, next Next) (any, error) {
	return f(ctx, req, next)
}

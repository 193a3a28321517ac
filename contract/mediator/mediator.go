package mediator

import "context"

// Sender dispatches requests to their single bound handler.
//
// Typed results remain available via the generic Send helper in the
// dispatcher package. This interface is intended for consumers that want to
// depend only on contracts.
type Sender interface {
	// Send dispatches a void request. The handler's effect is the outcome;
	// any result a fallback result-shape handler produces is discarded.
	Send(ctx context.Context, req Request) error

	// SendAny dispatches a result request and returns the untyped result.
	SendAny(ctx context.Context, req Request) (any, error)
}

// Publisher fans a notification out to every bound handler and waits for all
// of them to finish before reporting the aggregate outcome.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

// Mediator combines request dispatch and notification publishing.
type Mediator interface {
	Sender
	Publisher
}

package mediator

import "context"

// RequestHandler handles requests of type R for effect only.
// Implementations must be safe for concurrent use by multiple goroutines.
type RequestHandler[R Request] interface {
	Handle(ctx context.Context, r R) error
}

// ResultHandler handles requests of type R and returns a result of type T.
// Implementations must be safe for concurrent use by multiple goroutines.
type ResultHandler[R Request, T any] interface {
	Handle(ctx context.Context, r R) (T, error)
}

// NotificationHandler handles notifications of type N. Handlers bound to the
// same notification type run concurrently during Publish.
type NotificationHandler[N Notification] interface {
	Handle(ctx context.Context, n N) error
}

// RequestFunc is the type-erased form a bound request handler is stored in.
// Void handlers report a nil result.
type RequestFunc func(ctx context.Context, req Request) (any, error)

// NotificationFunc is the type-erased form a bound notification handler is
// stored in.
type NotificationFunc func(ctx context.Context, n Notification) error

// Shape discriminates the two request dispatch forms.
type Shape uint8

const (
	// ShapeVoid marks requests handled for effect only.
	ShapeVoid Shape = iota
	// ShapeResult marks requests whose handler returns a value.
	ShapeResult
)

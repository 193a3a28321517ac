package mediator

import (
	"context"
	"reflect"
)

// Registrar accepts handler and behavior bindings at composition time.
// Type-safe bindings continue via generic helper funcs in the dispatcher
// package; the untyped forms take the routing identity from sample's dynamic
// type.
type Registrar interface {
	// Bind (untyped)
	BindRequestOf(sample any, fn RequestFunc) error
	BindResultOf(sample any, fn RequestFunc) error
	BindNotificationOf(sample any, fn NotificationFunc) error

	// Behaviors
	Use(behaviors ...PipelineBehavior) error
	UseRequest(behaviors ...PipelineBehavior) error
	UseResult(behaviors ...PipelineBehavior) error
	UseFor(sample any, behaviors ...PipelineBehavior) error
}

// Module groups related bindings so applications register handlers in named
// batches at startup.
type Module interface {
	Register(r Registrar) error
}

// ResolutionScope is a per-dispatch view of the registered handlers. The
// dispatcher opens one scope per call and closes it on every exit path;
// nothing resolved from a scope outlives the call.
type ResolutionScope interface {
	// Request resolves the handler bound for the request type under the given
	// shape. The boolean reports whether a binding exists.
	Request(t reflect.Type, s Shape) (RequestFunc, bool)

	// Behaviors returns the pipeline for the shape and request type, ordered
	// outermost first.
	Behaviors(s Shape, t reflect.Type) []PipelineBehavior

	// Notifications returns every handler bound for the notification type in
	// registration order.
	Notifications(t reflect.Type) []NotificationFunc

	// Close releases the scope. A close error joins the dispatch outcome.
	Close() error
}

// HandlerProvider hands out resolution scopes. The Registry in the dispatcher
// package provides no-op scopes over itself; DI containers implement this to
// build per-dispatch handler instances.
type HandlerProvider interface {
	Scoped(ctx context.Context) ResolutionScope
}

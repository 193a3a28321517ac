package mediator

import "context"

// ForwardOptions controls how a broker forwarder routes a notification.
type ForwardOptions struct {
	// Topic overrides the destination subject/topic. Empty falls back to
	// Routed.Topic() and then to a name derived from the notification type.
	Topic   string
	Key     string
	Headers map[string]string
}

// HeaderPropagator abstracts injecting tracing context into outgoing headers.
// Implementations may bridge to OpenTelemetry or any other propagation
// standard; forwarders stay decoupled from concrete tracing libraries.
// Implementors should mutate the provided headers map by inserting keys that
// carry the context across process boundaries. Must be safe for concurrent use.
type HeaderPropagator interface {
	Inject(ctx context.Context, headers map[string]string)
}

// NopHeaderPropagator is a no-op implementation useful for tests or when tracing is disabled.
type NopHeaderPropagator struct{}

func (NopHeaderPropagator) Inject(ctx context.Context, headers map[string]string) {
	_ = ctx
	_ = headers
}

package mediator

// Request is a marker interface for messages routed to exactly one handler.
// The dynamic type of the value is the routing identity: two values are the
// same request kind iff their dynamic types are identical.
type Request interface{}

// Notification is a marker interface for messages fanned out to zero or more
// handlers. Publishing is fire-to-all; handlers run concurrently.
type Notification interface{}

// Routed is an optional capability for notifications destined to external
// brokers. Topic() may guide routing in forwarders.
type Routed interface{ Topic() string }

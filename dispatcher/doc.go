/*
Package dispatcher provides a typed in-process mediator: requests routed to a
single handler through a composable behavior pipeline, and notifications
fanned out concurrently to all bound handlers. Handlers are resolved per
dispatch through the HandlerProvider contract, so callers stay decoupled from
handler identity and lifetime.
*/
package dispatcher

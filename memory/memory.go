package memory

import (
	"log/slog"

	"github.com/next-trace/scg-mediator/dispatcher"
)

// New constructs a registry and a dispatcher wired together for purely
// in-process use. Bind handlers and behaviors on the registry, then send
// and publish through the dispatcher. A nil logger silences dispatch logs.
func New(logger *slog.Logger) (*dispatcher.Registry, *dispatcher.Dispatcher) {
	reg := dispatcher.NewRegistry()
	return reg, dispatcher.New(reg, logger)
}

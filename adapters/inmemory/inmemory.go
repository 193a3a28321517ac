package inmemory

import (
	"context"
	"sync"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// Forwarder is a thread-safe in-memory notification sink.
// It records every notification it receives, for testing and examples.
type Forwarder struct {
	mu            sync.Mutex
	Notifications []cmed.Notification
}

// Ensure Forward stays bindable as a notification handler.
var _ cmed.NotificationFunc = (&Forwarder{}).Forward

// New creates a new in-memory forwarder instance.
func New() *Forwarder { return &Forwarder{} }

// Bind registers the forwarder for notification type N.
func Bind[N cmed.Notification](reg cmed.Registrar, f *Forwarder) error {
	var zero N
	return reg.BindNotificationOf(zero, f.Forward)
}

// Forward records the notification.
func (f *Forwarder) Forward(ctx context.Context, n cmed.Notification) error {
	_ = ctx

	f.mu.Lock()
	f.Notifications = append(f.Notifications, n)
	f.mu.Unlock()

	return nil
}

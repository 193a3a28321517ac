package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

const notifPrefix = "notifications."

// Client is a minimal NATS-like publisher interface decoupled from any concrete library.
// Users can provide a wrapper around their NATS connection to satisfy this.
type Client interface {
	// Publish publishes a message to a subject with optional headers.
	Publish(subject string, data []byte, headers map[string]string) error
}

// Forwarder bridges published notifications to NATS subjects. Bind it for
// the notification types that should leave the process; Forward satisfies
// the NotificationFunc contract.
type Forwarder struct {
	Client     Client
	Options    cmed.ForwardOptions
	Propagator cmed.HeaderPropagator
}

// Ensure Forward stays bindable as a notification handler.
var _ cmed.NotificationFunc = (&Forwarder{}).Forward

// New creates a new NATS forwarder with the provided client.
func New(c Client) *Forwarder { return &Forwarder{Client: c} }

// Bind registers the forwarder for notification type N.
func Bind[N cmed.Notification](reg cmed.Registrar, f *Forwarder) error {
	var zero N
	return reg.BindNotificationOf(zero, f.Forward)
}

// Forward serializes the notification and publishes it to its subject.
func (f *Forwarder) Forward(ctx context.Context, n cmed.Notification) error {
	if err := f.ready(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("nats forward serialize: %w", errors.Join(berr.ErrSerializationFailed, err))
	}

	headers := forwardHeaders(n, f.Options)
	if f.Propagator != nil {
		f.Propagator.Inject(ctx, headers)
	}

	if err := f.Client.Publish(subjectFor(n, f.Options), body, headers); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("nats forward publish: %w", errors.Join(berr.ErrForwardFailed, err))
	}

	return nil
}

func (f *Forwarder) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.Client == nil {
		return fmt.Errorf("nats forward: %w", berr.ErrForwardFailed)
	}

	return nil
}

// helpers

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" { // unnamed (e.g., map/struct literal)
		name = t.String()
	}

	return name
}

func subjectFor(n cmed.Notification, o cmed.ForwardOptions) string {
	if o.Topic != "" {
		return o.Topic
	}

	if r, ok := n.(cmed.Routed); ok && r.Topic() != "" {
		return r.Topic()
	}

	return notifPrefix + typeName(n)
}

func forwardHeaders(n cmed.Notification, o cmed.ForwardOptions) map[string]string {
	h := make(map[string]string, len(o.Headers)+3)
	for k, v := range o.Headers {
		h[k] = v
	}

	h["message-id"] = uuid.NewString()
	h["message-type"] = typeName(n)

	if o.Key != "" {
		h["key"] = o.Key
	}

	return h
}

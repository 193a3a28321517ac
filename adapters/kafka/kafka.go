package kafka

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

// Writer is a minimal Kafka-like writer interface.
// Users can adapt segmentio/kafka-go or any other client to this.
type Writer interface {
	Write(topic string, key, value []byte, headers map[string]string) error
}

// Forwarder bridges published notifications to Kafka topics through an
// injected Writer. Bind it for the notification types that should leave
// the process; Forward satisfies the NotificationFunc contract.
type Forwarder struct {
	Writer     Writer
	Options    cmed.ForwardOptions
	Propagator cmed.HeaderPropagator
}

// Ensure Forward stays bindable as a notification handler.
var _ cmed.NotificationFunc = (&Forwarder{}).Forward

// New creates a new Kafka forwarder with the provided writer.
func New(w Writer) *Forwarder { return &Forwarder{Writer: w} }

// Bind registers the forwarder for notification type N.
func Bind[N cmed.Notification](reg cmed.Registrar, f *Forwarder) error {
	var zero N
	return reg.BindNotificationOf(zero, f.Forward)
}

// Forward serializes the notification and writes it to its topic. The
// Options.Key rides on the record key rather than in headers.
func (f *Forwarder) Forward(ctx context.Context, n cmed.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.Writer == nil {
		return fmt.Errorf("kafka forward: %w", berr.ErrForwardFailed)
	}

	val, err := mustJSON(n)
	if err != nil {
		return fmt.Errorf("kafka forward serialize: %w", berr.ErrSerializationFailed)
	}

	topic := topicFor(n, f.Options)
	key := []byte(f.Options.Key)
	headers := forwardHeaders(n, f.Options)

	if f.Propagator != nil {
		f.Propagator.Inject(ctx, headers)
	}

	if err = f.Writer.Write(topic, key, val, headers); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("kafka forward write: %w", errors.Join(berr.ErrForwardFailed, err))
	}

	return nil
}

// helpers (duplicated for simplicity and test isolation)

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	return name
}

func topicFor(n cmed.Notification, o cmed.ForwardOptions) string {
	if o.Topic != "" {
		return o.Topic
	}

	if r, ok := n.(cmed.Routed); ok && r.Topic() != "" {
		return r.Topic()
	}

	return notifPrefix + typeName(n)
}

func forwardHeaders(n cmed.Notification, o cmed.ForwardOptions) map[string]string {
	h := make(map[string]string, len(o.Headers)+2)
	for k, v := range o.Headers {
		h[k] = v
	}

	h["message-id"] = uuid.NewString()
	h["message-type"] = typeName(n)

	return h
}

func mustJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return b, nil
}

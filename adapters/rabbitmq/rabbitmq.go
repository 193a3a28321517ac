package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

const (
	// notifExchange is the topic exchange all forwarded notifications go through.
	notifExchange = "notifications"
	// notifPrefix namespaces routing keys for notifications without an explicit topic.
	notifPrefix = "notifications."
)

// PubMsg is a single outgoing AMQP message.
type PubMsg struct {
	Exchange   string
	RoutingKey string
	Body       []byte
	Headers    map[string]string
}

// Publisher is a minimal AMQP-like publisher interface decoupled from any concrete library.
// Users can provide a wrapper around their channel/connection to satisfy this.
type Publisher interface {
	// Publish publishes a single message.
	Publish(ctx context.Context, m PubMsg) error
}

// Forwarder bridges published notifications to RabbitMQ routing keys on the
// notifications exchange. Bind it for the notification types that should
// leave the process; Forward satisfies the NotificationFunc contract.
type Forwarder struct {
	Publisher  Publisher
	Options    cmed.ForwardOptions
	Propagator cmed.HeaderPropagator
}

// Ensure Forward stays bindable as a notification handler.
var _ cmed.NotificationFunc = (&Forwarder{}).Forward

// New creates a new RabbitMQ forwarder with the provided publisher.
func New(p Publisher) *Forwarder { return &Forwarder{Publisher: p} }

// Bind registers the forwarder for notification type N.
func Bind[N cmed.Notification](reg cmed.Registrar, f *Forwarder) error {
	var zero N
	return reg.BindNotificationOf(zero, f.Forward)
}

// Forward serializes the notification and publishes it to its routing key.
func (f *Forwarder) Forward(ctx context.Context, n cmed.Notification) error {
	if err := f.ready(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("rabbitmq forward serialize: %w", errors.Join(berr.ErrSerializationFailed, err))
	}

	headers := forwardHeaders(n, f.Options)
	if f.Propagator != nil {
		f.Propagator.Inject(ctx, headers)
	}

	msg := PubMsg{
		Exchange:   notifExchange,
		RoutingKey: routingFor(n, f.Options),
		Body:       body,
		Headers:    headers,
	}

	if err := f.Publisher.Publish(ctx, msg); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("rabbitmq forward publish: %w", errors.Join(berr.ErrForwardFailed, err))
	}

	return nil
}

func (f *Forwarder) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.Publisher == nil {
		return fmt.Errorf("rabbitmq forward: %w", berr.ErrForwardFailed)
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

func routingFor(n cmed.Notification, o cmed.ForwardOptions) string {
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

// amqpChannelPublisher adapts a concrete amqp091 channel to the Publisher interface.
type amqpChannelPublisher struct {
	ch *amqp.Channel
}

func (p *amqpChannelPublisher) Publish(ctx context.Context, m PubMsg) error {
	table := amqp.Table{}
	for k, v := range m.Headers {
		table[k] = v
	}

	return p.ch.PublishWithContext(ctx, m.Exchange, m.RoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Headers:     table,
		Body:        m.Body,
	})
}

// NewWithAMQPChannel wraps an existing amqp091 channel as a Publisher.
// The caller owns the channel lifecycle; prefer NewWithAMQPConn for a
// managed, reconnecting publisher.
//
//nolint:ireturn
func NewWithAMQPChannel(ch *amqp.Channel) Publisher {
	return &amqpChannelPublisher{ch: ch}
}

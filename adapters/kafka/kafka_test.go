package kafka_test

import (
	"context"
	"errors"
	"testing"

	"github.com/next-trace/scg-mediator/adapters/kafka"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/dispatcher"
)

// Unified Kafka adapter tests (single file).

type fakeWriter struct {
	calls []struct {
		topic   string
		key     []byte
		value   []byte
		headers map[string]string
	}
	err error
}

func (f *fakeWriter) Write(topic string, key, value []byte, headers map[string]string) error {
	f.calls = append(f.calls, struct {
		topic   string
		key     []byte
		value   []byte
		headers map[string]string
	}{topic, key, value, headers})

	return f.err
}

type note struct{ ID string }

type routed struct{ T string }

func (r routed) Topic() string { return r.T }

func TestKafka_Forward_TopicsKeysAndHeaders(t *testing.T) {
	fw := &fakeWriter{}
	f := kafka.New(fw)
	f.Options = cmed.ForwardOptions{Key: "key1", Headers: map[string]string{"h": "1"}}

	if err := f.Forward(t.Context(), note{ID: "7"}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	if len(fw.calls) != 1 {
		t.Fatalf("want 1, got %d", len(fw.calls))
	}

	c := fw.calls[0]

	if c.topic != "notifications.note" {
		t.Fatalf("topic: %s", c.topic)
	}

	if string(c.key) != "key1" {
		t.Fatalf("key: %s", string(c.key))
	}

	if len(c.value) == 0 {
		t.Fatalf("value empty")
	}

	if c.headers["h"] != "1" || c.headers["message-type"] != "note" || c.headers["message-id"] == "" {
		t.Fatalf("headers: %+v", c.headers)
	}

	// Routed notifications pick their own topic; an explicit override wins
	if err := f.Forward(t.Context(), routed{T: "evt.orders"}); err != nil {
		t.Fatalf("forward routed: %v", err)
	}

	if fw.calls[1].topic != "evt.orders" {
		t.Fatalf("routed topic: %s", fw.calls[1].topic)
	}

	f.Options.Topic = "audit"

	if err := f.Forward(t.Context(), routed{T: "evt.orders"}); err != nil {
		t.Fatalf("forward override: %v", err)
	}

	if fw.calls[2].topic != "audit" {
		t.Fatalf("override topic: %s", fw.calls[2].topic)
	}
}

func TestKafka_Forward_PointerNotificationTopic(t *testing.T) {
	fw := &fakeWriter{}
	f := kafka.New(fw)

	if err := f.Forward(t.Context(), &note{ID: "2"}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	if len(fw.calls) != 1 || fw.calls[0].topic != "notifications.note" {
		t.Fatalf("topic: %+v", fw.calls)
	}
}

func TestKafka_NilWriterError(t *testing.T) {
	f := kafka.New(nil)

	err := f.Forward(t.Context(), note{})
	if !errors.Is(err, berr.ErrForwardFailed) {
		t.Fatalf("want ErrForwardFailed, got %v", err)
	}
}

func TestKafka_Forward_ErrorWrapping_And_ContextCancel(t *testing.T) {
	fw := &fakeWriter{err: errors.New("boom")}
	f := kafka.New(fw)

	if err := f.Forward(t.Context(), note{ID: "x"}); !errors.Is(err, berr.ErrForwardFailed) {
		t.Fatalf("want wrapped ErrForwardFailed, got %v", err)
	}

	fw2 := &fakeWriter{err: context.DeadlineExceeded}
	f2 := kafka.New(fw2)

	if err := f2.Forward(t.Context(), note{ID: "x"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want context.DeadlineExceeded, got %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	fw3 := &fakeWriter{}
	f3 := kafka.New(fw3)

	if err := f3.Forward(ctx, note{ID: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	if len(fw3.calls) != 0 {
		t.Fatalf("writer called after cancellation")
	}
}

func TestKafka_BindForwardsThroughPublish(t *testing.T) {
	reg := dispatcher.NewRegistry()
	d := dispatcher.New(reg, nil)

	fw := &fakeWriter{}
	f := kafka.New(fw)

	if err := kafka.Bind[note](reg, f); err != nil {
		t.Fatalf("bind: %v", err)
	}

	if err := d.Publish(t.Context(), note{ID: "n1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(fw.calls) != 1 || fw.calls[0].topic != "notifications.note" {
		t.Fatalf("forward not reached: %+v", fw.calls)
	}
}

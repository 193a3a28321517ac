package memory

import (
	"context"
	"testing"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

type testCmd struct{}

type testQry struct{}

type testEvt struct{}

func TestNewMemoryMediator_BasicFlow(t *testing.T) {
	reg, m := New(nil)

	ctx := t.Context()

	// Bind and send a void request
	cmdCount := 0
	if err := reg.BindRequestOf(testCmd{}, func(ctx context.Context, v cmed.Request) (any, error) {
		cmdCount++
		return nil, nil
	}); err != nil {
		t.Fatalf("bind request: %v", err)
	}
	if err := m.Send(ctx, testCmd{}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if cmdCount != 1 {
		t.Fatalf("expected cmdCount=1 got %d", cmdCount)
	}

	// Bind and send a result request
	if err := reg.BindResultOf(testQry{}, func(ctx context.Context, v cmed.Request) (any, error) {
		return "ok", nil
	}); err != nil {
		t.Fatalf("bind result: %v", err)
	}
	res, err := m.SendAny(ctx, testQry{})
	if err != nil {
		t.Fatalf("send any: %v", err)
	}
	if s, ok := res.(string); !ok || s != "ok" {
		t.Fatalf("unexpected result: %#v", res)
	}

	// Bind and publish a notification
	evtCount := 0
	if err := reg.BindNotificationOf(testEvt{}, func(ctx context.Context, v cmed.Notification) error {
		evtCount++
		return nil
	}); err != nil {
		t.Fatalf("bind notification: %v", err)
	}
	if err := m.Publish(ctx, testEvt{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if evtCount != 1 {
		t.Fatalf("expected evtCount=1 got %d", evtCount)
	}
}

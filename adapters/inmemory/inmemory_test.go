package inmemory_test

import (
	"sync"
	"testing"

	"github.com/next-trace/scg-mediator/adapters/inmemory"
	"github.com/next-trace/scg-mediator/dispatcher"
)

type note struct{ ID string }

type other struct{ Name string }

func TestInmemory_RecordsForwarded(t *testing.T) {
	f := inmemory.New()

	if err := f.Forward(t.Context(), note{ID: "1"}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	if err := f.Forward(t.Context(), other{Name: "n"}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	if n := len(f.Notifications); n != 2 {
		t.Fatalf("want 2 notifications, got %d", n)
	}

	if got, ok := f.Notifications[0].(note); !ok || got.ID != "1" {
		t.Fatalf("first recording wrong: %+v", f.Notifications[0])
	}
}

func TestInmemory_ConcurrentSafety(t *testing.T) {
	f := inmemory.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		fwdNote := func(_ int) {
			defer wg.Done()

			_ = f.Forward(t.Context(), note{ID: "c"})
		}

		fwdOther := func(_ int) {
			defer wg.Done()

			_ = f.Forward(t.Context(), other{Name: "d"})
		}

		go fwdNote(i)
		go fwdOther(i)
	}

	wg.Wait()

	if len(f.Notifications) != 100 {
		t.Fatalf("notifications=%d", len(f.Notifications))
	}
}

func TestInmemory_BindForwardsThroughPublish(t *testing.T) {
	reg := dispatcher.NewRegistry()
	d := dispatcher.New(reg, nil)

	f := inmemory.New()
	if err := inmemory.Bind[note](reg, f); err != nil {
		t.Fatalf("bind: %v", err)
	}

	if err := d.Publish(t.Context(), note{ID: "n1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(f.Notifications) != 1 {
		t.Fatalf("forward not reached: %+v", f.Notifications)
	}
}

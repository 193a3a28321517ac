package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"sync"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// Dispatcher routes requests and notifications to handlers resolved from a
// HandlerProvider. Every dispatch opens one resolution scope, builds the
// behavior chain fresh, and closes the scope on every exit path. Nothing is
// cached across dispatches.
//
// Dispatcher is concurrency-safe and contains no global state. It never
// inspects ctx cancellation itself; ctx reaches behaviors and handlers
// unchanged, and whatever they return travels back unchanged.
type Dispatcher struct {
	provider cmed.HandlerProvider
	logger   *slog.Logger
}

// New constructs a Dispatcher over the given provider. A nil logger discards.
func New(p cmed.HandlerProvider, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Dispatcher{provider: p, logger: logger}
}

// Send dispatches a void request through its behavior pipeline. A request
// bound with a result handler is accepted; its result is discarded.
func (d *Dispatcher) Send(ctx context.Context, req cmed.Request) error {
	_, err := d.dispatch(ctx, req, cmed.ShapeVoid)
	return err
}

// SendAny dispatches a result request and returns the untyped result. A
// request bound with a void handler is accepted; the result is nil.
func (d *Dispatcher) SendAny(ctx context.Context, req cmed.Request) (any, error) {
	return d.dispatch(ctx, req, cmed.ShapeResult)
}

func (d *Dispatcher) dispatch(ctx context.Context, req cmed.Request, preferred cmed.Shape) (res any, err error) {
	if req == nil {
		return nil, fmt.Errorf("send: %w", berr.ErrNilMessage)
	}

	t := reflect.TypeOf(req)

	scope := d.provider.Scoped(ctx)
	defer func() {
		if cerr := scope.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	// The binding's shape, not the call form, selects the pipeline; the call
	// form only decides what happens to the result.
	shape := preferred

	fn, ok := scope.Request(t, shape)
	if !ok {
		shape = otherShape(preferred)
		fn, ok = scope.Request(t, shape)
	}

	if !ok {
		return nil, fmt.Errorf("send %s: %w", t.String(), berr.ErrHandlerNotFound)
	}

	res, err = compose(ctx, req, scope.Behaviors(shape, t), fn)()
	if preferred == cmed.ShapeVoid {
		res = nil
	}

	return res, err
}

func otherShape(s cmed.Shape) cmed.Shape {
	if s == cmed.ShapeVoid {
		return cmed.ShapeResult
	}

	return cmed.ShapeVoid
}

// Send dispatches req through s and asserts the result to T. A nil result
// yields the zero T; a result of another dynamic type reports
// ErrHandlerTypeMismatch.
func Send[R cmed.Request, T any](ctx context.Context, s cmed.Sender, req R) (T, error) {
	var zero T

	res, err := s.SendAny(ctx, req)
	if err != nil {
		return zero, err
	}

	if res == nil {
		return zero, nil
	}

	v, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("send %s: %w", reflect.TypeOf(req).String(), berr.ErrHandlerTypeMismatch)
	}

	return v, nil
}

// Publish fans n out to all bound handlers concurrently and waits for every
// one of them. Failures are isolated per handler and aggregated with
// errors.Join; a panicking handler is recovered into a PanicError so its
// siblings always run to completion. Zero bound handlers is a successful
// no-op.
func (d *Dispatcher) Publish(ctx context.Context, n cmed.Notification) (err error) {
	if n == nil {
		return fmt.Errorf("publish: %w", berr.ErrNilMessage)
	}

	t := reflect.TypeOf(n)

	scope := d.provider.Scoped(ctx)
	defer func() {
		if cerr := scope.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	handlers := scope.Notifications(t)
	if len(handlers) == 0 {
		return nil
	}

	errs := make([]error, len(handlers))

	var wg sync.WaitGroup

	for i, fn := range handlers {
		wg.Add(1)

		go func(i int, fn cmed.NotificationFunc) {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					errs[i] = &berr.PanicError{Value: v, Stack: debug.Stack()}
					d.logger.ErrorContext(ctx, "notification handler panicked", "type", t.String(), "panic", v)
				}
			}()

			errs[i] = fn(ctx, n)
		}(i, fn)
	}

	wg.Wait()

	return errors.Join(errs...)
}

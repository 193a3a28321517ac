package dispatcher

import (
	"context"
	"fmt"
	"reflect"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// BindRequest registers a void handler for request type R. Duplicate bindings
// are rejected. R must be a concrete type; dispatch routes by dynamic type.
func BindRequest[R cmed.Request](reg cmed.Registrar, h cmed.RequestHandler[R]) error {
	if h == nil {
		return fmt.Errorf("bind request: %w", berr.ErrNilHandler)
	}

	var zero R

	return reg.BindRequestOf(zero, func(ctx context.Context, v cmed.Request) (any, error) {
		req, ok := v.(R)
		if !ok {
			return nil, fmt.Errorf("send %s: %w", reflect.TypeOf(v).String(), berr.ErrHandlerTypeMismatch)
		}

		return nil, h.Handle(ctx, req)
	})
}

// BindResult registers a handler for request type R producing T. Duplicate
// bindings are rejected. R must be a concrete type; dispatch routes by
// dynamic type.
func BindResult[R cmed.Request, T any](reg cmed.Registrar, h cmed.ResultHandler[R, T]) error {
	if h == nil {
		return fmt.Errorf("bind result: %w", berr.ErrNilHandler)
	}

	var zero R

	return reg.BindResultOf(zero, func(ctx context.Context, v cmed.Request) (any, error) {
		req, ok := v.(R)
		if !ok {
			return nil, fmt.Errorf("send %s: %w", reflect.TypeOf(v).String(), berr.ErrHandlerTypeMismatch)
		}

		return h.Handle(ctx, req)
	})
}

// BindNotification appends a handler for notification type N. Multiple
// handlers per type are allowed; registration order is preserved.
func BindNotification[N cmed.Notification](reg cmed.Registrar, h cmed.NotificationHandler[N]) error {
	if h == nil {
		return fmt.Errorf("bind notification: %w", berr.ErrNilHandler)
	}

	var zero N

	return reg.BindNotificationOf(zero, func(ctx context.Context, v cmed.Notification) error {
		n, ok := v.(N)
		if !ok {
			return fmt.Errorf("publish %s: %w", reflect.TypeOf(v).String(), berr.ErrHandlerTypeMismatch)
		}

		return h.Handle(ctx, n)
	})
}

// RegisterModules runs each module's Register against the registrar in order,
// stopping on the first error.
func RegisterModules(reg cmed.Registrar, mods ...cmed.Module) error {
	for _, m := range mods {
		if m == nil {
			return fmt.Errorf("register module: %w", berr.ErrNilHandler)
		}

		if err := m.Register(reg); err != nil {
			return err
		}
	}

	return nil
}

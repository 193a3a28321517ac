package behaviors

import (
	"context"
	"runtime/debug"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// Recover returns a behavior that converts a panic anywhere downstream of it,
// in a later behavior or the handler itself, into a *errors.PanicError
// carrying the recovered value and the stack trace.
func Recover() cmed.PipelineBehavior {
	return cmed.PipelineBehaviorFunc(func(ctx context.Context, req cmed.Request, next cmed.Next) (res any, err error) {
		defer func() {
			if v := recover(); v != nil {
				res = nil
				err = &berr.PanicError{Value: v, Stack: debug.Stack()}
			}
		}()

		return next()
	})
}

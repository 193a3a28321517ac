package dispatcher

import (
	"context"
	"errors"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// revive:disable:max-public-structs

// BatchOptions controls Batch execution behavior.
// OnProgress is called after each request completes (success or failure) with done and total.
// OnError is called when a request returns an error with its index, the request value, and the error.
type BatchOptions struct {
	OnProgress func(done, total int)
	OnError    func(index int, req cmed.Request, err error)
}

// revive:enable:max-public-structs

// BatchOpt configures BatchOptions.
type BatchOpt func(*BatchOptions)

// WithBatchProgress sets the progress callback.
func WithBatchProgress(fn func(done, total int)) BatchOpt { //nolint:ireturn
	return func(o *BatchOptions) { o.OnProgress = fn }
}

// WithBatchOnError sets the error callback.
func WithBatchOnError(fn func(index int, req cmed.Request, err error)) BatchOpt { //nolint:ireturn
	return func(o *BatchOptions) { o.OnError = fn }
}

// Chain sends requests in order and stops on the first error.
func (d *Dispatcher) Chain(ctx context.Context, reqs ...cmed.Request) error {
	for _, r := range reqs {
		if err := d.Send(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

// Batch sends the provided requests sequentially. Between sends it respects
// context cancellation; it reports progress and aggregates errors.
func (d *Dispatcher) Batch(ctx context.Context, reqs []cmed.Request, opts ...BatchOpt) error {
	var o BatchOptions
	for _, f := range opts {
		f(&o)
	}

	total := len(reqs)

	var errs []error

	for i, r := range reqs {
		if err := ctx.Err(); err != nil { // canceled or deadline exceeded
			return errors.Join(append(errs, err)...)
		}

		err := d.Send(ctx, r)
		if err != nil {
			if o.OnError != nil {
				o.OnError(i, r, err)
			}

			errs = append(errs, err)
		}

		if o.OnProgress != nil {
			o.OnProgress(i+1, total)
		}
	}

	return errors.Join(errs...)
}

package behaviors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// Validation returns a behavior that checks requests against their `validate`
// struct tags before anything downstream runs. A failing request never
// reaches the handler; the error wraps ErrValidationFailed with one message
// per failed field. Requests that are not validatable structs pass through
// untouched.
func Validation() cmed.PipelineBehavior {
	v := validator.New()

	return cmed.PipelineBehaviorFunc(func(ctx context.Context, req cmed.Request, next cmed.Next) (any, error) {
		if err := v.StructCtx(ctx, req); err != nil {
			var invalid *validator.InvalidValidationError
			if errors.As(err, &invalid) {
				// not a struct, nothing to validate
				return next()
			}

			return nil, fmt.Errorf("%w: %s", berr.ErrValidationFailed, formatFieldErrors(err))
		}

		return next()
	})
}

// formatFieldErrors converts validator errors into readable messages.
func formatFieldErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')",
			e.Field(), e.Tag(), e.Value()))
	}

	return strings.Join(msgs, "; ")
}

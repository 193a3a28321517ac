package errors

import "fmt"

// Error codes for the mediator contracts. Keep stable; used across the
// dispatcher, behaviors and adapters.
const (
	ErrCodeHandlerExists       = "mediator.handler_exists"
	ErrCodeHandlerNotFound     = "mediator.handler_not_found"
	ErrCodeHandlerTypeMismatch = "mediator.handler_type_mismatch"
	ErrCodeNilHandler          = "mediator.nil_handler"
	ErrCodeNilMessage          = "mediator.nil_message"
	ErrCodeHandlerPanic        = "mediator.handler_panic"
	ErrCodeValidationFailed    = "mediator.validation_failed"
	ErrCodeForwardFailed       = "mediator.forward_failed"
	ErrCodeSerializationFailed = "mediator.serialization_failed"
)

// Code returns an error value that carries only a code string.
// It implements error by returning the code string in Error().
func Code(code string) error { return codedError(code) }

type codedError string

func (e codedError) Error() string { return string(e) }

var (
	ErrHandlerExists       = Code(ErrCodeHandlerExists)
	ErrHandlerNotFound     = Code(ErrCodeHandlerNotFound)
	ErrHandlerTypeMismatch = Code(ErrCodeHandlerTypeMismatch)
	ErrNilHandler          = Code(ErrCodeNilHandler)
	ErrNilMessage          = Code(ErrCodeNilMessage)
	ErrHandlerPanic        = Code(ErrCodeHandlerPanic)
	ErrValidationFailed    = Code(ErrCodeValidationFailed)
	ErrForwardFailed       = Code(ErrCodeForwardFailed)
	ErrSerializationFailed = Code(ErrCodeSerializationFailed)
)

// PanicError carries a panic recovered from a handler or behavior. Value is
// the recovered panic value; Stack is the goroutine stack captured at the
// recovery site.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCodeHandlerPanic, e.Value)
}

// Unwrap makes errors.Is(err, ErrHandlerPanic) match recovered panics.
func (e *PanicError) Unwrap() error { return ErrHandlerPanic }

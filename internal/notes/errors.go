package notes

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure kinds for a single submission. Every kind is terminal: the feed is
// left unchanged and the user has to resubmit.
var (
	ErrEmptyInput        = errors.New("empty input")
	ErrModelUnavailable  = errors.New("model unavailable")
	ErrMalformedResponse = errors.New("malformed response: no json block")
	ErrPayloadParse      = errors.New("payload parse error")
	ErrSchemaValidation  = errors.New("schema validation error")
)

// ParseError is returned when the json block exists but cannot be decoded.
// Raw holds the block text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPayloadParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrPayloadParse }

// ModelError keeps the cause of a failed model call, so callers can still
// tell a timeout from a cancellation.
type ModelError struct {
	Cause error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%v: %v", ErrModelUnavailable, e.Cause)
}

func (e *ModelError) Unwrap() error { return e.Cause }

func (e *ModelError) Is(target error) bool { return target == ErrModelUnavailable }

// ValidationError names the payload field that broke the schema
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrSchemaValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrSchemaValidation }

const (
	retryNotice = "Something went wrong while processing your note. Please try again."
	emptyNotice = "Write something first."
)

// UserMessage maps a submission error to the notice shown to the user.
// Diagnostic detail never leaks into it.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyInput) {
		return emptyNotice
	}
	return retryNotice
}

package otel

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/grocery/internal/errors"
)

const KeyErrorClass = "error.class"

const (
	ClassNotFound        = "not_found"
	ClassInvalidArgument = "invalid_argument"
	ClassAlreadyExist    = "already_exist"
	ClassConflict        = "conflict"
	ClassProcessing      = "processing"
	ClassUnauthorized    = "unauthorized"
	ClassInternal        = "internal"
)

// ErrorClass names the sentinel err wraps so spans can be grouped by failure
// kind instead of by message.
func ErrorClass(err error) string {
	switch {
	case errors.Is(err, inErrors.ErrNotFound):
		return ClassNotFound
	case errors.Is(err, inErrors.ErrInvalidArgument):
		return ClassInvalidArgument
	case errors.Is(err, inErrors.ErrAlreadyExist):
		return ClassAlreadyExist
	case errors.Is(err, inErrors.ErrEmptyAuth),
		errors.Is(err, inErrors.ErrTokenInvalid),
		errors.Is(err, inErrors.ErrEmptySubject),
		errors.Is(err, inErrors.ErrPasswordMismatch):
		return ClassUnauthorized
	case errors.Is(err, inErrors.ErrConflict):
		return ClassConflict
	case errors.Is(err, inErrors.ErrProcessing):
		return ClassProcessing
	default:
		return ClassInternal
	}
}

func RecordError(err error, span trace.Span) {
	if err == nil {
		return
	}
	class := ErrorClass(err)
	span.SetAttributes(attribute.String(KeyErrorClass, class))
	span.AddEvent(err.Error(), trace.WithAttributes(attribute.String(KeyErrorClass, class)))
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}

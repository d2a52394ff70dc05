package otel

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	inErrors "github.com/Alturino/grocery/internal/errors"
)

func TestErrorClass(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "wrapped not found", err: fmt.Errorf("failed locking productId with error=%w", inErrors.ErrNotFound), expected: ClassNotFound},
		{name: "invalid argument", err: inErrors.InvalidArgument("page=%d", 0), expected: ClassInvalidArgument},
		{name: "already exist", err: inErrors.ErrAlreadyExist, expected: ClassAlreadyExist},
		{name: "password mismatch", err: errors.Join(inErrors.ErrPasswordMismatch, errors.New("bcrypt")), expected: ClassUnauthorized},
		{name: "conflict", err: inErrors.ErrConflict, expected: ClassConflict},
		{name: "processing", err: inErrors.Processing(errors.New("image: unknown format")), expected: ClassProcessing},
		{name: "unclassified", err: errors.New("boom"), expected: ClassInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorClass(tt.err))
		})
	}
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdkTrace.NewTracerProvider(sdkTrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	tracer := provider.Tracer("error_test")

	_, span := tracer.Start(context.Background(), "failing")
	RecordError(fmt.Errorf("failed storing images with error=%w", inErrors.Processing(errors.New("disk full"))), span)
	span.End()

	_, span = tracer.Start(context.Background(), "succeeding")
	RecordError(nil, span)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	failing := ended[0]
	assert.Equal(t, codes.Error, failing.Status().Code)
	assert.Contains(t, failing.Attributes(), attribute.String(KeyErrorClass, ClassProcessing))

	succeeding := ended[1]
	assert.Equal(t, codes.Unset, succeeding.Status().Code)
	assert.Empty(t, succeeding.Attributes())
	assert.Empty(t, succeeding.Events())
}

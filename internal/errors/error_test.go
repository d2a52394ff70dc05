package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessing(t *testing.T) {
	cause := errors.New("corrupt image")

	err := Processing(cause)
	assert.ErrorIs(t, err, ErrProcessing)
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("failed deriving with error=%w", err)
	assert.Equal(t, wrapped, Processing(wrapped))
	assert.NoError(t, Processing(nil))
}

func TestNotFound(t *testing.T) {
	cause := errors.New("no rows in result set")

	err := NotFound(cause)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrProcessing)
}

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("quantity=%d must be greater than or equal to %d", 0, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.EqualError(t, err, "invalid argument: quantity=0 must be greater than or equal to 1")
}

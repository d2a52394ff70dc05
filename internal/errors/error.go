package errors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrEmptySubject     = errors.New("missing subject")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrFailedHashToken  = errors.New("failed hashing token")
	ErrPasswordMismatch = errors.New("password mismatch")

	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyExist    = errors.New("already exist")
	ErrProcessing      = errors.New("processing error")
	ErrConflict        = errors.New("conflict")
)

// Processing marks err as ErrProcessing while keeping err reachable through
// errors.Is and errors.As.
func Processing(err error) error {
	if err == nil || errors.Is(err, ErrProcessing) {
		return err
	}
	return errors.Join(ErrProcessing, err)
}

func NotFound(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return errors.Join(ErrNotFound, err)
}

func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

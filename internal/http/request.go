package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	inErrors "github.com/Alturino/grocery/internal/errors"
	"github.com/Alturino/grocery/internal/validate"
)

// DecodeJSON decodes the request body into v and validates it. Both failures
// are reported as ErrInvalidArgument.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed decoding request body with error=%s", inErrors.ErrInvalidArgument, err.Error())
	}
	if err := validate.New().StructCtx(r.Context(), v); err != nil {
		return fmt.Errorf("%w: failed validating request body with error=%s", inErrors.ErrInvalidArgument, err.Error())
	}
	return nil
}

func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	value := mux.Vars(r)[name]
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, inErrors.InvalidArgument("%s=%q is not a valid uuid", name, value)
	}
	return id, nil
}

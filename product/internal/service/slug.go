package service

import (
	"strings"

	"github.com/gosimple/slug"

	inErrors "github.com/Alturino/grocery/internal/errors"
)

// maxSlugLength leaves room for a counter suffix within the 250 column limit.
const maxSlugLength = 240

// slugOrDerive returns explicit when set, otherwise the slug of name.
func slugOrDerive(explicit string, name string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	derived := slug.Make(name)
	if len(derived) > maxSlugLength {
		derived = strings.TrimRight(derived[:maxSlugLength], "-")
	}
	if derived == "" {
		return "", inErrors.InvalidArgument("name=%q does not produce a slug", name)
	}
	return derived, nil
}

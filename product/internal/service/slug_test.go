package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/grocery/internal/errors"
)

func TestSlugOrDerive(t *testing.T) {
	testCases := []struct {
		name        string
		explicit    string
		input       string
		expected    string
		expectedErr error
	}{
		{name: "explicit slug wins", explicit: "apples", input: "Green Apples", expected: "apples"},
		{name: "derived from name", input: "Green Apples", expected: "green-apples"},
		{name: "cyrillic is transliterated", input: "Фрукты", expected: "frukty"},
		{name: "name without letters", input: "!!!", expectedErr: inErrors.ErrInvalidArgument},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := slugOrDerive(tc.explicit, tc.input)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}

	long, err := slugOrDerive("", strings.Repeat("ab ", 200))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(long), maxSlugLength)
	assert.False(t, strings.HasSuffix(long, "-"))
}

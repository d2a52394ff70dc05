package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	inErrors "github.com/Alturino/grocery/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "no rows is not found", err: pgx.ErrNoRows, expected: inErrors.ErrNotFound},
		{name: "serialization failure is conflict", err: &pgconn.PgError{Code: "40001"}, expected: inErrors.ErrConflict},
		{name: "deadlock is conflict", err: &pgconn.PgError{Code: "40P01"}, expected: inErrors.ErrConflict},
		{name: "lock not available is conflict", err: &pgconn.PgError{Code: "55P03"}, expected: inErrors.ErrConflict},
		{name: "foreign key violation is not found", err: &pgconn.PgError{Code: "23503"}, expected: inErrors.ErrNotFound},
		{name: "unique violation is already exist", err: &pgconn.PgError{Code: "23505"}, expected: inErrors.ErrAlreadyExist},
		{
			name:     "wrapped pg error is still classified",
			err:      fmt.Errorf("failed inserting with error=%w", &pgconn.PgError{Code: "40001"}),
			expected: inErrors.ErrConflict,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := Classify(tc.err)
			assert.ErrorIs(t, actual, tc.expected)
			assert.ErrorIs(t, actual, tc.err)
		})
	}

	t.Run("unknown error is unchanged", func(t *testing.T) {
		err := errors.New("connection reset")
		assert.Equal(t, err, Classify(err))
		assert.NoError(t, Classify(nil))
	})
}

func TestWithRetry(t *testing.T) {
	conflict := errors.Join(inErrors.ErrConflict, &pgconn.PgError{Code: "40P01"})

	t.Run("succeeds after transient conflicts", func(t *testing.T) {
		calls := 0
		actual, err := WithRetry(context.Background(), 3, func(c context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, conflict
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, actual)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausted conflicts become processing errors", func(t *testing.T) {
		calls := 0
		_, err := WithRetry(context.Background(), 2, func(c context.Context) (int, error) {
			calls++
			return 0, conflict
		})
		assert.ErrorIs(t, err, inErrors.ErrProcessing)
		assert.ErrorIs(t, err, inErrors.ErrConflict)
		assert.Equal(t, 3, calls)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		calls := 0
		_, err := WithRetry(context.Background(), 3, func(c context.Context) (int, error) {
			calls++
			return 0, inErrors.ErrNotFound
		})
		assert.ErrorIs(t, err, inErrors.ErrNotFound)
		assert.NotErrorIs(t, err, inErrors.ErrProcessing)
		assert.Equal(t, 1, calls)
	})
}

func TestNumericConversion(t *testing.T) {
	price := decimal.RequireFromString("49.99")
	assert.True(t, price.Equal(NumericToDecimal(DecimalToNumeric(price))))
	assert.Equal(t, "", TextToString(StringToText("")))
	assert.True(t, NumericToDecimal(pgtype.Numeric{}).IsZero())
}

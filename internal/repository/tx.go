package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/grocery/internal/errors"
	"github.com/Alturino/grocery/internal/log"
)

const retryBackoff = 20 * time.Millisecond

// WithTx runs fn against queries bound to a fresh transaction and commits when
// fn succeeds. Any error from fn, Begin or Commit is passed through Classify.
func WithTx[T any](
	c context.Context,
	pool *pgxpool.Pool,
	q *Queries,
	fn func(q *Queries) (T, error),
) (_ T, txErr error) {
	var zero T

	tx, err := pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		return zero, Classify(fmt.Errorf("failed beginning transaction with error=%w", err))
	}
	defer func() {
		rollbackErr := tx.Rollback(c)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			txErr = errors.Join(txErr, fmt.Errorf("failed rolling back transaction with error=%w", rollbackErr))
		}
	}()

	result, err := fn(q.WithTx(tx))
	if err != nil {
		return zero, Classify(err)
	}

	if err := tx.Commit(c); err != nil {
		return zero, Classify(fmt.Errorf("failed committing transaction with error=%w", err))
	}
	return result, nil
}

// WithRetry calls fn until it returns something other than ErrConflict or the
// retries are used up. Exhausted conflicts surface as ErrProcessing.
func WithRetry[T any](c context.Context, maxRetries int, fn func(c context.Context) (T, error)) (T, error) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "repository WithRetry").Logger()

	var zero T
	for attempt := 0; ; attempt++ {
		result, err := fn(c)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, inErrors.ErrConflict) {
			return zero, err
		}
		if attempt >= maxRetries {
			return zero, inErrors.Processing(
				fmt.Errorf("failed after %d retries with error=%w", attempt, err),
			)
		}

		logger.Warn().Err(err).Int(log.KeyRetry, attempt+1).Msg("retrying after conflict")
		select {
		case <-c.Done():
			return zero, inErrors.Processing(errors.Join(c.Err(), err))
		case <-time.After(retryBackoff * time.Duration(attempt+1)):
		}
	}
}

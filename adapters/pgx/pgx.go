// Package pgx implements looplan's storage ports on a PostgreSQL pool.
//
// Every call runs under a per-call deadline and transient transport
// failures are retried a bounded number of times with exponential backoff
// before surfacing core.ErrStoreUnavailable. Logical failures (no rows,
// unique violation) are never retried.
package pgx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/looplan/looplan/core"
)

const (
	defaultCallTimeout = 5 * time.Second
	maxAttempts        = 3
	retryBaseDelay     = 100 * time.Millisecond

	uniqueViolationCode = "23505"
)

type Adapter struct {
	pool        *pgxpool.Pool
	callTimeout time.Duration
}

var _ core.StorageAdapter = (*Adapter)(nil)

type Option func(*Adapter)

// WithCallTimeout overrides the per-call deadline applied to every store
// operation.
func WithCallTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.callTimeout = d
		}
	}
}

func New(pool *pgxpool.Pool, opts ...Option) *Adapter {
	a := &Adapter{
		pool:        pool,
		callTimeout: defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Close() {
	a.pool.Close()
}

// withRetry runs fn under the adapter's per-call deadline, retrying
// transient failures with exponential backoff. After the attempts are
// exhausted the transport error is wrapped as ErrStoreUnavailable.
func (a *Adapter) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(retryBaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
		defer cancel()

		if err := fn(callCtx); err != nil {
			if transient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil && transient(err) {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return err
}

// transient reports whether err is a transport-level failure worth
// retrying: a network error, a failed dial, or a per-call deadline.
func transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound reports a single-row lookup that matched nothing.
	ErrNotFound = errors.New("store: not found")

	// ErrConnectionUnavailable reports that a database connection could not
	// be acquired, either because connection parameters are missing from the
	// configuration or because the connect attempt itself failed. The cause
	// is logged at the point of failure; callers only see this sentinel so
	// they can tell infrastructure trouble apart from "no data".
	ErrConnectionUnavailable = errors.New("store: database connection unavailable")
)

// Querier runs a single parameterized statement. Parameters are always passed
// positionally, never interpolated into the query text. *pgx.Conn satisfies
// this, as do the pgxmock fakes used in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Conn is one acquired database connection. Every acquirer must Close it on
// all exit paths.
type Conn interface {
	Querier
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// ConnManager hands out one connection per logical operation. There is no
// pooling: each Acquire dials, each Close tears down. Operation latency
// includes the full connection setup cost, which is an accepted tradeoff for
// this service's request rates.
type ConnManager interface {
	// Acquire returns a live connection or ErrConnectionUnavailable.
	Acquire(ctx context.Context) (Conn, error)
}

// QueryError wraps a driver-level failure from executing a statement. It is
// logged where it occurs and propagated unchanged; no layer retries.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("store: query %s failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// MalformedRecordError reports a raw row that does not match the shape the
// mapper expects. It indicates schema/mapper drift and is always surfaced,
// never dropped.
type MalformedRecordError struct {
	Entity string
	Want   int
	Got    int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("store: malformed %s record: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("store: malformed %s record: expected %d fields, got %d", e.Entity, e.Want, e.Got)
}

package store

import (
	"context"
)

// FetchAll executes one parameterized statement and eagerly reads the full
// result set as raw positional tuples. There is no cursor or streaming
// semantics; a result either arrives whole or not at all. Driver failures
// come back as *QueryError and are never retried here.
func FetchAll(ctx context.Context, q Querier, sql string, args ...any) ([][]any, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, &QueryError{Op: "execute", Err: err}
	}
	defer rows.Close()

	out := make([][]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &QueryError{Op: "scan", Err: err}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "fetch", Err: err}
	}
	return out, nil
}

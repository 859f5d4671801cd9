package service

import (
	"context"

	"github.com/hpcstack/telemetry/internal/telemetry/store"
	"github.com/hpcstack/telemetry/pkg/slogx"
)

// DefaultRowLimit applies when a caller does not ask for a specific number
// of rows.
const DefaultRowLimit = 100

// TelemetryService is the single gateway for filtered reads over the
// telemetry tables. Every operation follows the same shape: acquire one
// connection, run one parameterized query, map the rows, release the
// connection on every exit path.
type TelemetryService struct {
	DB store.ConnManager

	// MaxRowLimit caps caller-supplied limits. Zero disables the cap, which
	// reproduces the unbounded behaviour of the first deployment and should
	// stay enabled in production.
	MaxRowLimit int
}

func (s *TelemetryService) clampLimit(limit int) int {
	if limit <= 0 {
		limit = DefaultRowLimit
	}
	if s.MaxRowLimit > 0 && limit > s.MaxRowLimit {
		limit = s.MaxRowLimit
	}
	return limit
}

// queryEntities is the one "filter, fetch, map, release" pipeline every
// gateway operation runs through. The connection is released exactly once no
// matter which stage fails, and errors propagate unchanged after logging.
func queryEntities[T any](
	ctx context.Context,
	db store.ConnManager,
	mapFn func([]any) (T, error),
	sql string,
	args ...any,
) ([]T, error) {
	log := slogx.FromContext(ctx)

	conn, err := db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close(ctx) }()

	rows, err := store.FetchAll(ctx, conn, sql, args...)
	if err != nil {
		log.Error("telemetry query failed", "err", err)
		return nil, err
	}

	entities, err := store.MapAll(rows, mapFn)
	if err != nil {
		log.Error("telemetry record mapping failed", "err", err)
		return nil, err
	}

	log.Debug("telemetry query complete", "rows", len(entities))
	return entities, nil
}

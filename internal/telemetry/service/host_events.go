package service

import (
	"context"
	"errors"
	"time"

	"github.com/hpcstack/telemetry/internal/telemetry/domain"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
)

// ErrInvalidDate reports a day filter that is not in MM-DD-YYYY form.
var ErrInvalidDate = errors.New("invalid date: expected MM-DD-YYYY")

// dayFilterLayout matches the wire format the day endpoints have always
// accepted.
const dayFilterLayout = "01-02-2006"

const hostEventColumns = "time, host, jid, type, event, unit, value, diff, arc"

// HostEventsByHost returns host events for one host identifier, in the
// table's natural row order, up to limit rows.
func (s *TelemetryService) HostEventsByHost(ctx context.Context, hostID string, limit int) ([]domain.HostEvent, error) {
	return queryEntities(ctx, s.DB, store.ToHostEvent,
		`SELECT `+hostEventColumns+` FROM host_data WHERE host = $1 LIMIT $2`,
		hostID, s.clampLimit(limit),
	)
}

// HostEventsByJob returns host events recorded for one job identifier.
func (s *TelemetryService) HostEventsByJob(ctx context.Context, jobID string, limit int) ([]domain.HostEvent, error) {
	return queryEntities(ctx, s.DB, store.ToHostEvent,
		`SELECT `+hostEventColumns+` FROM host_data WHERE jid = $1 LIMIT $2`,
		jobID, s.clampLimit(limit),
	)
}

// HostEventsByDay returns host events within the calendar day given in
// MM-DD-YYYY form. The filter is the half-open range [day, day+1), so other
// date-like filters can derive their bounds the same way.
func (s *TelemetryService) HostEventsByDay(ctx context.Context, day string, limit int) ([]domain.HostEvent, error) {
	start, err := time.Parse(dayFilterLayout, day)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end := start.AddDate(0, 0, 1)

	return queryEntities(ctx, s.DB, store.ToHostEvent,
		`SELECT `+hostEventColumns+` FROM host_data WHERE time >= $1 AND time < $2 LIMIT $3`,
		start, end, s.clampLimit(limit),
	)
}

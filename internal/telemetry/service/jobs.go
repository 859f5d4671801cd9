package service

import (
	"context"

	"github.com/hpcstack/telemetry/internal/telemetry/domain"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
)

const jobColumns = "jid, submit_time, start_time, end_time, runtime, timelimit, " +
	"node_hrs, nhosts, ncores, ngpus, username, account, queue, state, jobname, " +
	"exitcode, host_list"

// JobsByID returns job records for one job identifier.
func (s *TelemetryService) JobsByID(ctx context.Context, jobID string, limit int) ([]domain.Job, error) {
	return queryEntities(ctx, s.DB, store.ToJob,
		`SELECT `+jobColumns+` FROM job_data WHERE jid = $1 LIMIT $2`,
		jobID, s.clampLimit(limit),
	)
}

// JobsByUser returns job records submitted by one username.
func (s *TelemetryService) JobsByUser(ctx context.Context, username string, limit int) ([]domain.Job, error) {
	return queryEntities(ctx, s.DB, store.ToJob,
		`SELECT `+jobColumns+` FROM job_data WHERE username = $1 LIMIT $2`,
		username, s.clampLimit(limit),
	)
}

// JobsByName returns job records matching one job name.
func (s *TelemetryService) JobsByName(ctx context.Context, jobName string, limit int) ([]domain.Job, error) {
	return queryEntities(ctx, s.DB, store.ToJob,
		`SELECT `+jobColumns+` FROM job_data WHERE jobname = $1 LIMIT $2`,
		jobName, s.clampLimit(limit),
	)
}

// JobsByHost returns job records whose host list contains the given host.
func (s *TelemetryService) JobsByHost(ctx context.Context, hostID string, limit int) ([]domain.Job, error) {
	return queryEntities(ctx, s.DB, store.ToJob,
		`SELECT `+jobColumns+` FROM job_data WHERE $1 = ANY(host_list) LIMIT $2`,
		hostID, s.clampLimit(limit),
	)
}

// JobsByAccount returns job records charged to one account.
func (s *TelemetryService) JobsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Job, error) {
	return queryEntities(ctx, s.DB, store.ToJob,
		`SELECT `+jobColumns+` FROM job_data WHERE account = $1 LIMIT $2`,
		accountID, s.clampLimit(limit),
	)
}

// JobsByExitCode returns job records that finished with one exit code.
func (s *TelemetryService) JobsByExitCode(ctx context.Context, exitCode string, limit int) ([]domain.Job, error) {
	return queryEntities(ctx, s.DB, store.ToJob,
		`SELECT `+jobColumns+` FROM job_data WHERE exitcode = $1 LIMIT $2`,
		exitCode, s.clampLimit(limit),
	)
}

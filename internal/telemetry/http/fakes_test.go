package http

import (
	"context"

	"github.com/hpcstack/telemetry/internal/telemetry/domain"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
)

// fakeAuth scripts the Authenticator responses and records what it was
// handed.
type fakeAuth struct {
	loginToken string
	loginErr   error

	user    domain.User
	authErr error

	gotUsername string
	gotPassword string
	gotToken    string
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (string, error) {
	f.gotUsername, f.gotPassword = username, password
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (domain.User, error) {
	f.gotToken = token
	if f.authErr != nil {
		return domain.User{}, f.authErr
	}
	return f.user, nil
}

// fakeTelemetry returns the same scripted result for every operation and
// records the last call.
type fakeTelemetry struct {
	events []domain.HostEvent
	jobs   []domain.Job
	err    error

	gotOp    string
	gotArg   string
	gotLimit int
}

func (f *fakeTelemetry) record(op, arg string, limit int) {
	f.gotOp, f.gotArg, f.gotLimit = op, arg, limit
}

func (f *fakeTelemetry) HostEventsByHost(_ context.Context, hostID string, limit int) ([]domain.HostEvent, error) {
	f.record("HostEventsByHost", hostID, limit)
	return f.events, f.err
}

func (f *fakeTelemetry) HostEventsByJob(_ context.Context, jobID string, limit int) ([]domain.HostEvent, error) {
	f.record("HostEventsByJob", jobID, limit)
	return f.events, f.err
}

func (f *fakeTelemetry) HostEventsByDay(_ context.Context, day string, limit int) ([]domain.HostEvent, error) {
	f.record("HostEventsByDay", day, limit)
	return f.events, f.err
}

func (f *fakeTelemetry) JobsByID(_ context.Context, jobID string, limit int) ([]domain.Job, error) {
	f.record("JobsByID", jobID, limit)
	return f.jobs, f.err
}

func (f *fakeTelemetry) JobsByUser(_ context.Context, username string, limit int) ([]domain.Job, error) {
	f.record("JobsByUser", username, limit)
	return f.jobs, f.err
}

func (f *fakeTelemetry) JobsByName(_ context.Context, jobName string, limit int) ([]domain.Job, error) {
	f.record("JobsByName", jobName, limit)
	return f.jobs, f.err
}

func (f *fakeTelemetry) JobsByHost(_ context.Context, hostID string, limit int) ([]domain.Job, error) {
	f.record("JobsByHost", hostID, limit)
	return f.jobs, f.err
}

func (f *fakeTelemetry) JobsByAccount(_ context.Context, accountID string, limit int) ([]domain.Job, error) {
	f.record("JobsByAccount", accountID, limit)
	return f.jobs, f.err
}

func (f *fakeTelemetry) JobsByExitCode(_ context.Context, exitCode string, limit int) ([]domain.Job, error) {
	f.record("JobsByExitCode", exitCode, limit)
	return f.jobs, f.err
}

// fakeDB scripts connection acquisition for the readiness probe.
type fakeDB struct {
	conn store.Conn
	err  error
}

func (f *fakeDB) Acquire(ctx context.Context) (store.Conn, error) {
	return f.conn, f.err
}

package telemetrysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Session is an authenticated view of the API, holding the bearer token
// issued at login. Tokens are short-lived and there is no refresh flow; when
// a session expires, log in again.
type Session struct {
	client      *SDKClient
	accessToken string
}

// getEntities performs an authenticated GET and decodes a JSON array
// response.
func getEntities[T any](ctx context.Context, s *Session, path string, limit int) ([]T, error) {
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var entities []T
	if err := decodeJSON(resp, &entities, http.StatusOK); err != nil {
		return nil, err
	}
	return entities, nil
}

// HostEventsByHost returns host events for one host. A limit of 0 uses the
// server default.
func (s *Session) HostEventsByHost(ctx context.Context, hostID string, limit int) ([]HostEvent, error) {
	return getEntities[HostEvent](ctx, s, "/v1/host-events/host/"+url.PathEscape(hostID), limit)
}

// HostEventsByJob returns host events recorded for one job.
func (s *Session) HostEventsByJob(ctx context.Context, jobID string, limit int) ([]HostEvent, error) {
	return getEntities[HostEvent](ctx, s, "/v1/host-events/job/"+url.PathEscape(jobID), limit)
}

// HostEventsByDay returns host events within one calendar day, given in
// MM-DD-YYYY form.
func (s *Session) HostEventsByDay(ctx context.Context, day string, limit int) ([]HostEvent, error) {
	return getEntities[HostEvent](ctx, s, "/v1/host-events/day/"+url.PathEscape(day), limit)
}

// JobsByID returns job records for one job identifier.
func (s *Session) JobsByID(ctx context.Context, jobID string, limit int) ([]Job, error) {
	return getEntities[Job](ctx, s, "/v1/jobs/"+url.PathEscape(jobID), limit)
}

// JobsByUser returns job records submitted by one username.
func (s *Session) JobsByUser(ctx context.Context, username string, limit int) ([]Job, error) {
	return getEntities[Job](ctx, s, "/v1/jobs/user/"+url.PathEscape(username), limit)
}

// JobsByName returns job records matching one job name.
func (s *Session) JobsByName(ctx context.Context, jobName string, limit int) ([]Job, error) {
	return getEntities[Job](ctx, s, "/v1/jobs/name/"+url.PathEscape(jobName), limit)
}

// JobsByHost returns job records whose host list contains the given host.
func (s *Session) JobsByHost(ctx context.Context, hostID string, limit int) ([]Job, error) {
	return getEntities[Job](ctx, s, "/v1/jobs/host/"+url.PathEscape(hostID), limit)
}

// JobsByAccount returns job records charged to one account.
func (s *Session) JobsByAccount(ctx context.Context, accountID string, limit int) ([]Job, error) {
	return getEntities[Job](ctx, s, "/v1/jobs/account/"+url.PathEscape(accountID), limit)
}

// JobsByExitCode returns job records that finished with one exit code.
func (s *Session) JobsByExitCode(ctx context.Context, exitCode string, limit int) ([]Job, error) {
	return getEntities[Job](ctx, s, "/v1/jobs/exit-code/"+url.PathEscape(exitCode), limit)
}

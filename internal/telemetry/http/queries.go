package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hpcstack/telemetry/internal/telemetry/service"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
	"github.com/hpcstack/telemetry/pkg/httpx"
	"github.com/hpcstack/telemetry/pkg/slogx"
)

// limitParam reads the optional ?limit= query parameter. Zero means "use the
// gateway default"; a value that is not a positive integer is a client error.
func limitParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// writeEntities finishes a filtered query request: translates error kinds to
// status codes and treats an empty result as not-found, matching the API's
// long-standing contract.
func writeEntities[T any](w http.ResponseWriter, r *http.Request, entities []T, err error, notFoundDetail string) {
	if err != nil {
		log := slogx.FromContext(r.Context())
		switch {
		case errors.Is(err, store.ErrConnectionUnavailable):
			httpx.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
		case errors.Is(err, service.ErrInvalidDate):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error("query endpoint failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	if len(entities) == 0 {
		httpx.WriteError(w, http.StatusNotFound, notFoundDetail)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entities)
}

// HostEventsHandler serves the host_data filter endpoints.
type HostEventsHandler struct {
	Telemetry TelemetryReader
}

func (h *HostEventsHandler) HandleByHost(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	hostID := r.PathValue("hostID")
	events, err := h.Telemetry.HostEventsByHost(r.Context(), hostID, limit)
	writeEntities(w, r, events, err, "host data for node "+hostID+" not found")
}

func (h *HostEventsHandler) HandleByJob(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	jobID := r.PathValue("jobID")
	events, err := h.Telemetry.HostEventsByJob(r.Context(), jobID, limit)
	writeEntities(w, r, events, err, "host data for job "+jobID+" not found")
}

func (h *HostEventsHandler) HandleByDay(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	day := r.PathValue("day")
	events, err := h.Telemetry.HostEventsByDay(r.Context(), day, limit)
	writeEntities(w, r, events, err, "host data for day "+day+" not found")
}

// JobsHandler serves the job_data filter endpoints.
type JobsHandler struct {
	Telemetry TelemetryReader
}

func (h *JobsHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	jobID := r.PathValue("jobID")
	jobs, err := h.Telemetry.JobsByID(r.Context(), jobID, limit)
	writeEntities(w, r, jobs, err, "job "+jobID+" not found")
}

func (h *JobsHandler) HandleByUser(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	username := r.PathValue("username")
	jobs, err := h.Telemetry.JobsByUser(r.Context(), username, limit)
	writeEntities(w, r, jobs, err, "jobs for user "+username+" not found")
}

func (h *JobsHandler) HandleByName(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	jobName := r.PathValue("jobName")
	jobs, err := h.Telemetry.JobsByName(r.Context(), jobName, limit)
	writeEntities(w, r, jobs, err, "jobs named "+jobName+" not found")
}

func (h *JobsHandler) HandleByHost(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	hostID := r.PathValue("hostID")
	jobs, err := h.Telemetry.JobsByHost(r.Context(), hostID, limit)
	writeEntities(w, r, jobs, err, "jobs on host "+hostID+" not found")
}

func (h *JobsHandler) HandleByAccount(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	accountID := r.PathValue("accountID")
	jobs, err := h.Telemetry.JobsByAccount(r.Context(), accountID, limit)
	writeEntities(w, r, jobs, err, "jobs for account "+accountID+" not found")
}

func (h *JobsHandler) HandleByExitCode(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	exitCode := r.PathValue("exitCode")
	jobs, err := h.Telemetry.JobsByExitCode(r.Context(), exitCode, limit)
	writeEntities(w, r, jobs, err, "jobs with exit code "+exitCode+" not found")
}

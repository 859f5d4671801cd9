package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hpcstack/telemetry/internal/telemetry/domain"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
	"github.com/hpcstack/telemetry/pkg/httpx"
	"github.com/hpcstack/telemetry/pkg/slogx"
)

// Authenticator is the slice of the auth service the HTTP layer needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

// TelemetryReader is the query gateway as seen from the handlers: one
// operation per (entity kind, filter dimension).
type TelemetryReader interface {
	HostEventsByHost(ctx context.Context, hostID string, limit int) ([]domain.HostEvent, error)
	HostEventsByJob(ctx context.Context, jobID string, limit int) ([]domain.HostEvent, error)
	HostEventsByDay(ctx context.Context, day string, limit int) ([]domain.HostEvent, error)
	JobsByID(ctx context.Context, jobID string, limit int) ([]domain.Job, error)
	JobsByUser(ctx context.Context, username string, limit int) ([]domain.Job, error)
	JobsByName(ctx context.Context, jobName string, limit int) ([]domain.Job, error)
	JobsByHost(ctx context.Context, hostID string, limit int) ([]domain.Job, error)
	JobsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Job, error)
	JobsByExitCode(ctx context.Context, exitCode string, limit int) ([]domain.Job, error)
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	db        store.ConnManager
	Auth      Authenticator
	Telemetry TelemetryReader
}

func NewRouter(buildVersion string, db store.ConnManager, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		db:           db,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerHostEvents()
	r.registerJobs()
	r.registerSystem()
}

func (r *Router) registerLogin() {
	// POST /token - strict rate limit by IP + username to slow brute force
	loginHandler := &LoginHandler{Auth: r.Auth}
	r.Mux.Handle("POST /token",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerHostEvents() {
	h := &HostEventsHandler{Telemetry: r.Telemetry}
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			RequireAuth(r.Auth),
			httpx.RateLimitByIP(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/host-events/host/{hostID}", secured(h.HandleByHost))
	r.Mux.Handle("GET /v1/host-events/job/{jobID}", secured(h.HandleByJob))
	r.Mux.Handle("GET /v1/host-events/day/{day}", secured(h.HandleByDay))
}

func (r *Router) registerJobs() {
	h := &JobsHandler{Telemetry: r.Telemetry}
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			RequireAuth(r.Auth),
			httpx.RateLimitByIP(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/jobs/{jobID}", secured(h.HandleByID))
	r.Mux.Handle("GET /v1/jobs/user/{username}", secured(h.HandleByUser))
	r.Mux.Handle("GET /v1/jobs/name/{jobName}", secured(h.HandleByName))
	r.Mux.Handle("GET /v1/jobs/host/{hostID}", secured(h.HandleByHost))
	r.Mux.Handle("GET /v1/jobs/account/{accountID}", secured(h.HandleByAccount))
	r.Mux.Handle("GET /v1/jobs/exit-code/{exitCode}", secured(h.HandleByExitCode))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.db),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

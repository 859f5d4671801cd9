package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jackc/pgx/v5"

	"github.com/hpcstack/telemetry/internal/telemetry/store"
)

// Config holds the connection parameters for one Postgres role. The telemetry
// tables and the api_user table are reachable under different roles, so the
// application builds two of these.
type Config struct {
	Host     string
	Name     string
	User     string
	Password string
}

// complete reports whether every parameter is present, along with a
// per-parameter status map for logging. The status map never contains the
// password itself.
func (c Config) complete() (bool, map[string]string) {
	status := map[string]string{
		"host": presence(c.Host),
		"name": presence(c.Name),
		"user": presence(c.User),
		"pw":   presence(c.Password),
	}
	ok := c.Host != "" && c.Name != "" && c.User != "" && c.Password != ""
	return ok, status
}

func presence(v string) string {
	if v == "" {
		return "missing"
	}
	return "present"
}

func (c Config) dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Name)
}

// Manager implements store.ConnManager by dialing a fresh connection for each
// logical operation. Acquisition failures are logged here with their cause
// and surfaced to callers only as store.ErrConnectionUnavailable.
type Manager struct {
	cfg    Config
	logger *slog.Logger
}

func NewManager(cfg Config, logger *slog.Logger) *Manager {
	return &Manager{cfg: cfg, logger: logger}
}

func (m *Manager) Acquire(ctx context.Context) (store.Conn, error) {
	ok, status := m.cfg.complete()
	if !ok {
		m.logger.Error("database credentials missing",
			"host", status["host"],
			"name", status["name"],
			"user", status["user"],
			"pw", status["pw"],
		)
		return nil, store.ErrConnectionUnavailable
	}

	conn, err := pgx.Connect(ctx, m.cfg.dsn())
	if err != nil {
		m.logger.Error("database connection failed", "host", m.cfg.Host, "name", m.cfg.Name, "err", err)
		return nil, store.ErrConnectionUnavailable
	}
	return conn, nil
}

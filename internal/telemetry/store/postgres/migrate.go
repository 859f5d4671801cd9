package postgres

import (
	"embed"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ApplyMigrations brings the api_user table up to date using the embedded
// migration files. The host_data and job_data schemas are owned by the
// ingest pipeline, not by this service, so nothing here touches them.
func (m *Manager) ApplyMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	instance, err := migrate.NewWithSourceInstance("iofs", src, m.migrateURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer instance.Close()

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (m *Manager) migrateURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s/%s",
		url.QueryEscape(m.cfg.User), url.QueryEscape(m.cfg.Password), m.cfg.Host, m.cfg.Name)
}

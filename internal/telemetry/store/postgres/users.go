package postgres

import (
	"context"

	"github.com/hpcstack/telemetry/internal/telemetry/domain"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
)

// Users is the credential store over the api_user table. Like every other
// data access in this service it acquires one connection per operation and
// releases it before returning.
type Users struct {
	DB store.ConnManager
}

func NewUsers(db store.ConnManager) *Users {
	return &Users{DB: db}
}

// GetByUsername performs a single-row lookup with no side effects. Returns
// store.ErrNotFound when the identity does not exist.
func (u *Users) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	conn, err := u.DB.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx,
		`SELECT id, username, password_hash, created_at, last_login FROM api_user WHERE username = $1`,
		username,
	)
	if err != nil {
		return domain.User{}, &store.QueryError{Op: "api_user lookup", Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.User{}, &store.QueryError{Op: "api_user lookup", Err: err}
		}
		return domain.User{}, store.ErrNotFound
	}

	var user domain.User
	if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.LastLogin); err != nil {
		return domain.User{}, &store.QueryError{Op: "api_user scan", Err: err}
	}
	return user, nil
}

// TouchLastLogin stamps last_login for a successful login.
func (u *Users) TouchLastLogin(ctx context.Context, username string) error {
	conn, err := u.DB.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx,
		`UPDATE api_user SET last_login = now() WHERE username = $1`,
		username,
	); err != nil {
		return &store.QueryError{Op: "api_user touch last_login", Err: err}
	}
	return nil
}

// Create inserts a new credential record. Used by seed tooling and tests;
// there is no HTTP surface for user creation.
func (u *Users) Create(ctx context.Context, username, passwordHash string) error {
	conn, err := u.DB.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx,
		`INSERT INTO api_user (username, password_hash, created_at) VALUES ($1, $2, now())`,
		username, passwordHash,
	); err != nil {
		return &store.QueryError{Op: "api_user insert", Err: err}
	}
	return nil
}

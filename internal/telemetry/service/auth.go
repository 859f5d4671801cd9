package service

import (
	"context"
	"errors"
	"time"

	"github.com/hpcstack/telemetry/internal/telemetry/domain"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
	"github.com/hpcstack/telemetry/pkg/cryptox"
	"github.com/hpcstack/telemetry/pkg/jwtx"
	"github.com/hpcstack/telemetry/pkg/slogx"
)

// ErrUnauthorized covers every credential failure: unknown identity, wrong
// password, and invalid or expired tokens. Collapsing them into one error
// keeps account enumeration off the table.
var ErrUnauthorized = errors.New("unauthorized")

// CredentialStore is the read side of the api_user table as AuthService
// needs it.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	TouchLastLogin(ctx context.Context, username string) error
}

// AuthService issues bearer tokens on login and resolves them back to live
// users on every authenticated request.
type AuthService struct {
	Users     CredentialStore
	Codec     *jwtx.Codec
	AccessTTL time.Duration
}

// Login verifies an identity/password pair and returns a signed bearer token
// bound to the identity. Unknown usernames and wrong passwords produce the
// identical ErrUnauthorized; infrastructure failures pass through unchanged.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnauthorized
		}
		log.Error("login: credential lookup failed", "err", err)
		return "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", ErrUnauthorized
	}

	token, err := s.Codec.Issue(user.Username, s.AccessTTL)
	if err != nil {
		log.Error("login: token issue failed", "err", err)
		return "", err
	}

	// last_login is advisory; a failed stamp should not fail the login.
	if err := s.Users.TouchLastLogin(ctx, user.Username); err != nil {
		log.Warn("login: failed to update last_login", "username", user.Username, "err", err)
	}

	return token, nil
}

// Authenticate verifies a bearer token and re-resolves its subject to a live
// user. The re-resolution is mandatory: tokens are stateless, so without it a
// token would keep working after its account was removed.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	subject, err := s.Codec.Verify(token)
	if err != nil {
		return domain.User{}, ErrUnauthorized
	}

	user, err := s.Users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthorized
		}
		slogx.FromContext(ctx).Error("authenticate: subject lookup failed", "err", err)
		return domain.User{}, err
	}
	return user, nil
}

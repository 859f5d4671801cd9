package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the access-token lifetime used when the caller does not ask
// for a specific window.
const DefaultTTL = 30 * time.Minute

// ErrInvalidToken is the uniform verification failure. Tampered, expired and
// structurally malformed tokens all map here; the distinction never reaches
// callers.
var ErrInvalidToken = errors.New("jwtx: invalid token")

// hmacMethods are the signing algorithms the codec accepts. The key is
// symmetric and process-wide, so only the HMAC family applies.
var hmacMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Codec signs and verifies compact bearer tokens carrying a subject identity
// and an expiry. The secret key and algorithm are fixed at construction and
// never mutate afterwards.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// Option adjusts codec construction.
type Option func(*Codec)

// WithClock overrides the codec's time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a codec for the given symmetric secret and algorithm name
// (HS256, HS384 or HS512).
func NewCodec(secret []byte, alg string, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty secret key")
	}
	method, ok := hmacMethods[alg]
	if !ok {
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q", alg)
	}

	c := &Codec{secret: secret, method: method, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token binding the subject to an expiry window. A ttl <= 0
// means DefaultTTL; an explicit ttl is honoured as given, with no upper
// bound enforced at this layer.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify checks signature then expiry and returns the subject. Every failure
// mode is ErrInvalidToken; clock skew is not compensated, and a token
// evaluated exactly at its expiry instant is already invalid.
func (c *Codec) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	// The library treats exp as valid up to and including the instant
	// itself; the contract here is half-open.
	if !c.now().UTC().Before(claims.ExpiresAt.Time) {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

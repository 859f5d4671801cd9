package domain

import "time"

// User is an API credential record from the api_user table. Users are
// provisioned out-of-band (seed or admin tooling); this service only ever
// reads them and touches last_login on a successful login.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

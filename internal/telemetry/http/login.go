package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hpcstack/telemetry/internal/telemetry/service"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
	"github.com/hpcstack/telemetry/pkg/httpx"
	"github.com/hpcstack/telemetry/pkg/slogx"
)

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginHandler serves POST /token. Accepts
// application/x-www-form-urlencoded with username and password fields.
type LoginHandler struct {
	Auth Authenticator
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		httpx.WriteError(w, http.StatusBadRequest, "expected form-encoded body")
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")
	if username == "" || password == "" {
		httpx.WriteBearerError(w, "incorrect username or password")
		return
	}

	token, err := h.Auth.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			httpx.WriteBearerError(w, "incorrect username or password")
		case errors.Is(err, store.ErrConnectionUnavailable):
			httpx.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
		default:
			log.Error("login failed unexpectedly", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avkorz/diskhub/internal/auth"
	"github.com/avkorz/diskhub/internal/disk"
	"github.com/avkorz/diskhub/internal/family"
	"github.com/avkorz/diskhub/internal/middleware"
)

// AuthHandler covers both flows: the family login (bearer API) and the
// browser session cookie exchange.
type AuthHandler struct {
	families      *family.Service
	disk          *disk.Client
	sessionSecret []byte
	sessionTTL    time.Duration
	logger        *slog.Logger
}

func NewAuthHandler(families *family.Service, diskClient *disk.Client, sessionSecret []byte, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		families:      families,
		disk:          diskClient,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
		logger:        logger,
	}
}

// Login authenticates a family member. The disk token is already in context
// (the roster document has to be read with it).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		badRequest(w, "username and password are required")
		return
	}

	member, err := h.families.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"member": member,
	})
}

// Connect exchanges a disk OAuth token for a signed session cookie so browser
// pages never hold the raw token.
func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.Token == "" {
		badRequest(w, "token is required")
		return
	}

	// Probe the token against the store before trusting it.
	ctx := auth.WithIdentity(r.Context(), auth.Identity{Token: req.Token})
	if _, err := h.disk.List(ctx, req.Token, "/", 1); err != nil {
		respondError(w, h.logger, err)
		return
	}

	session, err := auth.IssueSession(h.sessionSecret, req.Token, h.sessionTTL)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

// Disconnect clears the session cookie.
func (h *AuthHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

// requestToken pulls the disk token out of the request context.
func requestToken(ctx context.Context) string {
	return auth.Token(ctx)
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/avkorz/diskhub/internal/auth"
	"github.com/avkorz/diskhub/internal/disk"
	"github.com/avkorz/diskhub/internal/family"
	"github.com/avkorz/diskhub/internal/portfolio"
	"github.com/avkorz/diskhub/internal/push"
	"github.com/avkorz/diskhub/internal/scope"
	"github.com/avkorz/diskhub/internal/todo"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps service errors onto the HTTP taxonomy. Anything
// unrecognized is an upstream failure: logged in full, reported generically.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, disk.ErrUnauthorized),
		errors.Is(err, family.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidSession):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, scope.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "path outside allowed area"})
	case errors.Is(err, disk.ErrNotFound),
		errors.Is(err, family.ErrMemberNotFound),
		errors.Is(err, todo.ErrListNotFound),
		errors.Is(err, todo.ErrItemNotFound),
		errors.Is(err, portfolio.ErrItemNotFound),
		errors.Is(err, push.ErrSubscriptionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, disk.ErrConflict),
		errors.Is(err, family.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already exists"})
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// decodeJSON decodes a request body, rejecting unknown junk gracefully.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

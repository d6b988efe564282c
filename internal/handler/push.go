package handler

import (
	"log/slog"
	"net/http"

	"github.com/avkorz/diskhub/internal/push"
)

type PushHandler struct {
	service *push.Service
	subs    *push.SubscriptionStore
	logger  *slog.Logger
}

func NewPushHandler(service *push.Service, subs *push.SubscriptionStore, logger *slog.Logger) *PushHandler {
	return &PushHandler{service: service, subs: subs, logger: logger}
}

func (h *PushHandler) VAPIDKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"publicKey": h.service.VAPIDPublicKey()})
}

func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		badRequest(w, "endpoint and keys are required")
		return
	}

	sub, err := h.subs.Add(r.Context(), member, req.Endpoint, req.Keys.P256dh, req.Keys.Auth)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"subscription": sub})
}

func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		Endpoint string `json:"endpoint"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.Endpoint == "" {
		badRequest(w, "endpoint is required")
		return
	}

	if err := h.subs.Remove(r.Context(), member, req.Endpoint); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

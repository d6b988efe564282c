package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/avkorz/diskhub/internal/family"
	"github.com/avkorz/diskhub/internal/ws"
)

type MemberHandler struct {
	families *family.Service
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewMemberHandler(families *family.Service, hub *ws.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{families: families, hub: hub, logger: logger}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.families.ListMembers(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Name == "" || req.Username == "" || req.Password == "" {
		badRequest(w, "name, username and password are required")
		return
	}

	member, err := h.families.AddMember(r.Context(), family.AddMemberParams{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "family_member", Action: "created", ID: member.ID})
	writeJSON(w, http.StatusCreated, map[string]any{"member": member})
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		badRequest(w, "member id is required")
		return
	}

	if err := h.families.RemoveMember(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "family_member", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/avkorz/diskhub/internal/portfolio"
	"github.com/avkorz/diskhub/internal/ws"
)

type PortfolioHandler struct {
	items  *portfolio.Service
	hub    *ws.Hub
	logger *slog.Logger
}

func NewPortfolioHandler(items *portfolio.Service, hub *ws.Hub, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{items: items, hub: hub, logger: logger}
}

func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.Items(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		LongDescription string   `json:"longDescription"`
		Category        string   `json:"category"`
		Tags            []string `json:"tags"`
		Images          []string `json:"images"`
		DemoURL         string   `json:"demoUrl"`
		GithubURL       string   `json:"githubUrl"`
		Technologies    []string `json:"technologies"`
		Status          string   `json:"status"`
		Featured        bool     `json:"featured"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(w, "title is required")
		return
	}

	item, err := h.items.Create(r.Context(), portfolio.CreateParams{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Category:        req.Category,
		Tags:            req.Tags,
		Images:          req.Images,
		DemoURL:         req.DemoURL,
		GithubURL:       req.GithubURL,
		Technologies:    req.Technologies,
		Status:          req.Status,
		Featured:        req.Featured,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "portfolio_item", Action: "created", ID: item.ID})
	writeJSON(w, http.StatusCreated, map[string]any{"item": item})
}

func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title           *string  `json:"title"`
		Description     *string  `json:"description"`
		LongDescription *string  `json:"longDescription"`
		Category        *string  `json:"category"`
		Tags            []string `json:"tags"`
		Images          []string `json:"images"`
		DemoURL         *string  `json:"demoUrl"`
		GithubURL       *string  `json:"githubUrl"`
		Technologies    []string `json:"technologies"`
		Status          *string  `json:"status"`
		Featured        *bool    `json:"featured"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	item, err := h.items.Update(r.Context(), r.PathValue("id"), portfolio.UpdateParams{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Category:        req.Category,
		Tags:            req.Tags,
		Images:          req.Images,
		DemoURL:         req.DemoURL,
		GithubURL:       req.GithubURL,
		Technologies:    req.Technologies,
		Status:          req.Status,
		Featured:        req.Featured,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "portfolio_item", Action: "updated", ID: item.ID})
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.items.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "portfolio_item", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avkorz/diskhub/internal/scope"
	"github.com/avkorz/diskhub/internal/todo"
	"github.com/avkorz/diskhub/internal/ws"
)

type TodoHandler struct {
	todos  *todo.Service
	hub    *ws.Hub
	logger *slog.Logger
}

func NewTodoHandler(todos *todo.Service, hub *ws.Hub, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, hub: hub, logger: logger}
}

// memberParam validates the member scope from the query string. The username
// doubles as a path segment, so it goes through the scope factory.
func memberParam(r *http.Request) (string, error) {
	member := strings.TrimSpace(r.URL.Query().Get("member"))
	if _, err := scope.MemberFolder(member); err != nil {
		return "", err
	}
	return member, nil
}

func (h *TodoHandler) Lists(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	lists, err := h.todos.Lists(r.Context(), member)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

func (h *TodoHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(w, "name is required")
		return
	}

	list, err := h.todos.CreateList(r.Context(), member, todo.CreateListParams{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "todo_list", Action: "created", ID: list.ID, Scope: member})
	writeJSON(w, http.StatusCreated, map[string]any{"list": list})
}

func (h *TodoHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	list, err := h.todos.UpdateList(r.Context(), member, r.PathValue("listId"), todo.UpdateListParams{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "todo_list", Action: "updated", ID: list.ID, Scope: member})
	writeJSON(w, http.StatusOK, map[string]any{"list": list})
}

func (h *TodoHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	listID := r.PathValue("listId")
	if err := h.todos.DeleteList(r.Context(), member, listID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "todo_list", Action: "deleted", ID: listID, Scope: member})
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		Category    string     `json:"category"`
		DueDate     *time.Time `json:"dueDate"`
		Tags        []string   `json:"tags"`
		CreatedBy   string     `json:"createdBy"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(w, "title is required")
		return
	}

	item, err := h.todos.CreateItem(r.Context(), member, r.PathValue("listId"), todo.CreateItemParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "todo_item", Action: "created", ID: item.ID, Scope: member})
	writeJSON(w, http.StatusCreated, map[string]any{"item": item})
}

func (h *TodoHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Completed   *bool      `json:"completed"`
		Priority    *string    `json:"priority"`
		Category    *string    `json:"category"`
		DueDate     *time.Time `json:"dueDate"`
		Tags        []string   `json:"tags"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	item, err := h.todos.UpdateItem(r.Context(), member, r.PathValue("listId"), r.PathValue("itemId"), todo.UpdateItemParams{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "todo_item", Action: "updated", ID: item.ID, Scope: member})
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (h *TodoHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	itemID := r.PathValue("itemId")
	if err := h.todos.DeleteItem(r.Context(), member, r.PathValue("listId"), itemID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.Event{Entity: "todo_item", Action: "deleted", ID: itemID, Scope: member})
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/avkorz/diskhub/internal/budget"
)

type BudgetHandler struct {
	budgets *budget.Service
	logger  *slog.Logger
}

func NewBudgetHandler(budgets *budget.Service, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, logger: logger}
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	member, err := memberParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	entries, err := h.budgets.Entries(r.Context(), member)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"budgets": entries})
}

// Package budget exposes the per-member finance documents. They are written
// by other tooling; this service only reads them.
package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avkorz/diskhub/internal/docstore"
	"github.com/avkorz/diskhub/internal/model"
)

type Service struct {
	repo   *docstore.Repo
	logger *slog.Logger
}

func NewService(repo *docstore.Repo, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// DocPath returns the backing document path for a member's budgets.
func DocPath(member string) string {
	return fmt.Sprintf("/family/%s/finances/budgets.json", member)
}

// Entries returns a member's budget records, empty when none exist.
func (s *Service) Entries(ctx context.Context, member string) ([]model.BudgetEntry, error) {
	entries, err := docstore.ReadJSON(ctx, s.repo, DocPath(member), []model.BudgetEntry{})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

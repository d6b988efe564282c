package portfolio

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/avkorz/diskhub/internal/docstore"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	return NewService(docstore.NewRepo(docstore.NewMemoryStore()), slog.Default())
}

func TestItemsEmptyByDefault(t *testing.T) {
	svc := setupService(t)

	items, err := svc.Items(context.Background())
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty catalog, got %d", len(items))
	}
}

func TestCreateItem(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateParams{
		Title:        "Home dashboard",
		Description:  "Kiosk UI for the hallway tablet",
		Technologies: []string{"go", "htmx"},
		Featured:     true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID == "" || item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Errorf("identity fields missing: %+v", item)
	}
	if item.Status != "planned" {
		t.Errorf("status = %q, want planned default", item.Status)
	}
	if item.Tags == nil || item.Images == nil {
		t.Error("slice fields should be non-nil")
	}

	items, _ := svc.Items(ctx)
	if len(items) != 1 {
		t.Fatalf("catalog has %d items, want 1", len(items))
	}
}

func TestUpdateItem(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	item, _ := svc.Create(ctx, CreateParams{Title: "Old", Status: "in-progress"})

	title := "New"
	featured := true
	updated, err := svc.Update(ctx, item.ID, UpdateParams{Title: &title, Featured: &featured})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New" || !updated.Featured {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Status != "in-progress" {
		t.Error("unpatched field changed")
	}
	if updated.UpdatedAt.Before(item.UpdatedAt) {
		t.Error("updatedAt went backwards")
	}

	if _, err := svc.Update(ctx, "missing", UpdateParams{Title: &title}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestDeleteItem(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	item, _ := svc.Create(ctx, CreateParams{Title: "Doomed"})

	if err := svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, _ := svc.Items(ctx)
	if len(items) != 0 {
		t.Error("item still present after delete")
	}
	if err := svc.Delete(ctx, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("second delete err = %v, want ErrItemNotFound", err)
	}
}

package todo

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/avkorz/diskhub/internal/docstore"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	return NewService(docstore.NewRepo(docstore.NewMemoryStore()), slog.Default())
}

func TestListsEmptyByDefault(t *testing.T) {
	svc := setupService(t)

	lists, err := svc.Lists(context.Background(), "alice")
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if len(lists) != 0 {
		t.Errorf("expected no lists, got %d", len(lists))
	}
}

func TestCreateList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	list, err := svc.CreateList(ctx, "alice", CreateListParams{Name: "Chores"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if list.ID == "" {
		t.Error("id not assigned")
	}
	if list.Color != defaultColor {
		t.Errorf("color = %q, want default", list.Color)
	}
	if list.CreatedAt.IsZero() || list.UpdatedAt.IsZero() {
		t.Error("timestamps not stamped")
	}

	lists, _ := svc.Lists(ctx, "alice")
	if len(lists) != 1 || lists[0].Name != "Chores" {
		t.Errorf("lists = %+v", lists)
	}

	// Lists are per member.
	other, _ := svc.Lists(ctx, "bob")
	if len(other) != 0 {
		t.Error("list leaked into another member's scope")
	}
}

func TestUpdateList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	list, _ := svc.CreateList(ctx, "alice", CreateListParams{Name: "Chores"})

	name := "Weekend"
	updated, err := svc.UpdateList(ctx, "alice", list.ID, UpdateListParams{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Weekend" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Color != list.Color {
		t.Error("unpatched field changed")
	}
	if updated.UpdatedAt.Before(list.UpdatedAt) {
		t.Errorf("updatedAt went backwards: %v -> %v", list.UpdatedAt, updated.UpdatedAt)
	}

	if _, err := svc.UpdateList(ctx, "alice", "missing", UpdateListParams{Name: &name}); !errors.Is(err, ErrListNotFound) {
		t.Errorf("err = %v, want ErrListNotFound", err)
	}
}

func TestDeleteList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	list, _ := svc.CreateList(ctx, "alice", CreateListParams{Name: "Chores"})

	if err := svc.DeleteList(ctx, "alice", list.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteList(ctx, "alice", list.ID); !errors.Is(err, ErrListNotFound) {
		t.Errorf("second delete err = %v, want ErrListNotFound", err)
	}
}

func TestItemLifecycle(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	list, _ := svc.CreateList(ctx, "alice", CreateListParams{Name: "Chores"})

	item, err := svc.CreateItem(ctx, "alice", list.ID, CreateItemParams{
		Title:     "Mow lawn",
		CreatedBy: "alice",
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ID == "" || item.Priority != "medium" {
		t.Errorf("item = %+v", item)
	}
	if item.Tags == nil {
		t.Error("tags should default to empty slice")
	}

	done := true
	updated, err := svc.UpdateItem(ctx, "alice", list.ID, item.ID, UpdateItemParams{Completed: &done})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if !updated.Completed || updated.CompletedAt == nil {
		t.Errorf("completion not recorded: %+v", updated)
	}

	undone := false
	updated, err = svc.UpdateItem(ctx, "alice", list.ID, item.ID, UpdateItemParams{Completed: &undone})
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if updated.Completed || updated.CompletedAt != nil {
		t.Errorf("uncompletion not recorded: %+v", updated)
	}

	if err := svc.DeleteItem(ctx, "alice", list.ID, item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if err := svc.DeleteItem(ctx, "alice", list.ID, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("second delete err = %v, want ErrItemNotFound", err)
	}
}

func TestUpdateItemUnknownList(t *testing.T) {
	svc := setupService(t)
	title := "x"
	_, err := svc.UpdateItem(context.Background(), "alice", "nope", "nope", UpdateItemParams{Title: &title})
	if !errors.Is(err, ErrListNotFound) {
		t.Errorf("err = %v, want ErrListNotFound", err)
	}
}

func TestDueSoon(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	list, _ := svc.CreateList(ctx, "alice", CreateListParams{Name: "Chores"})

	soon := time.Now().Add(30 * time.Minute)
	later := time.Now().Add(72 * time.Hour)
	if _, err := svc.CreateItem(ctx, "alice", list.ID, CreateItemParams{Title: "due soon", DueDate: &soon}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateItem(ctx, "alice", list.ID, CreateItemParams{Title: "due later", DueDate: &later}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateItem(ctx, "alice", list.ID, CreateItemParams{Title: "no due date"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	due, err := svc.DueSoon(ctx, "alice", time.Hour)
	if err != nil {
		t.Fatalf("due soon: %v", err)
	}
	if len(due) != 1 || due[0].Title != "due soon" {
		t.Errorf("due = %+v", due)
	}
}

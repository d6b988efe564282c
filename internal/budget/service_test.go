package budget

import (
	"context"
	"log/slog"
	"testing"

	"github.com/avkorz/diskhub/internal/docstore"
)

func setupService(t *testing.T) (*Service, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	return NewService(docstore.NewRepo(store), slog.Default()), store
}

func TestEntriesEmpty(t *testing.T) {
	svc, _ := setupService(t)

	entries, err := svc.Entries(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want empty", entries)
	}
}

func TestEntriesReadsDocument(t *testing.T) {
	svc, store := setupService(t)

	doc := `[{"category":"groceries","limit":400},{"category":"fuel","limit":120}]`
	if err := store.Write(context.Background(), DocPath("alice"), []byte(doc)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	entries, err := svc.Entries(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0]["category"] != "groceries" {
		t.Errorf("first entry = %v", entries[0])
	}

	// Another member's document is untouched.
	other, err := svc.Entries(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Entries bob: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("bob entries = %v, want empty", other)
	}
}

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Repo layers typed document access and per-path write serialization over a
// Store. All collection services go through a Repo rather than the raw Store.
type Repo struct {
	store Store
	locks *pathLocks
}

func NewRepo(store Store) *Repo {
	return &Repo{store: store, locks: newPathLocks()}
}

// Store returns the underlying Store, for callers that need raw bytes.
func (r *Repo) Store() Store {
	return r.store
}

// ReadJSON loads the document at path into T. An absent document returns def
// unchanged; a transport or decode failure is an error.
func ReadJSON[T any](ctx context.Context, r *Repo, path string, def T) (T, error) {
	data, found, err := r.store.Read(ctx, path)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

// WriteJSON serializes v and rewrites the whole document at path. Write
// failures always propagate.
func WriteJSON[T any](ctx context.Context, r *Repo, path string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return r.store.Write(ctx, path, data)
}

// UpdateJSON runs a read-modify-write cycle under the per-path lock: load the
// document (or def when absent), apply fn, rewrite. fn returning an error
// aborts without writing. Returns the value as written.
func UpdateJSON[T any](ctx context.Context, r *Repo, path string, def T, fn func(*T) error) (T, error) {
	unlock := r.locks.lock(path)
	defer unlock()

	v, err := ReadJSON(ctx, r, path, def)
	if err != nil {
		return def, err
	}
	if err := fn(&v); err != nil {
		return def, err
	}
	if err := WriteJSON(ctx, r, path, v); err != nil {
		return def, err
	}
	return v, nil
}

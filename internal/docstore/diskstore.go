package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gopath "path"

	"github.com/avkorz/diskhub/internal/auth"
	"github.com/avkorz/diskhub/internal/disk"
)

// DiskStore persists documents on the remote disk. The bearer token travels in
// the request context, so a single DiskStore serves all callers.
type DiskStore struct {
	client *disk.Client
	logger *slog.Logger
}

func NewDiskStore(client *disk.Client, logger *slog.Logger) *DiskStore {
	return &DiskStore{client: client, logger: logger}
}

func (s *DiskStore) token(ctx context.Context) (string, error) {
	tok := auth.Token(ctx)
	if tok == "" {
		return "", disk.ErrUnauthorized
	}
	return tok, nil
}

// Read fetches the document at path via the two-step download protocol.
// A missing document is absence, not an error. Any other failure, including
// a broken second-stage content fetch, is surfaced so callers can tell
// "never created" from "currently unreachable".
func (s *DiskStore) Read(ctx context.Context, path string) ([]byte, bool, error) {
	tok, err := s.token(ctx)
	if err != nil {
		return nil, false, err
	}

	data, err := s.client.Download(ctx, tok, path)
	if errors.Is(err, disk.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return data, true, nil
}

// Write uploads the document wholesale, creating the parent directory first.
// The mkdir is best-effort: an existing directory is fine, and a failure here
// surfaces later as an upload error anyway.
func (s *DiskStore) Write(ctx context.Context, path string, data []byte) error {
	tok, err := s.token(ctx)
	if err != nil {
		return err
	}

	if dir := gopath.Dir(path); dir != "/" && dir != "." {
		if err := s.client.Mkdir(ctx, tok, dir); err != nil && !errors.Is(err, disk.ErrConflict) {
			s.logger.Debug("mkdir before write", "path", dir, "error", err)
		}
	}

	if err := s.client.Upload(ctx, tok, path, data, "application/json", true); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *DiskStore) Delete(ctx context.Context, path string) error {
	tok, err := s.token(ctx)
	if err != nil {
		return err
	}
	if err := s.client.Delete(ctx, tok, path, true); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// CreateFolder makes a directory, tolerating one that already exists.
func (s *DiskStore) CreateFolder(ctx context.Context, path string) error {
	tok, err := s.token(ctx)
	if err != nil {
		return err
	}
	if err := s.client.Mkdir(ctx, tok, path); err != nil && !errors.Is(err, disk.ErrConflict) {
		return fmt.Errorf("create folder %s: %w", path, err)
	}
	return nil
}

func (s *DiskStore) RemoveFolder(ctx context.Context, path string) error {
	tok, err := s.token(ctx)
	if err != nil {
		return err
	}
	if err := s.client.Delete(ctx, tok, path, true); err != nil {
		return fmt.Errorf("remove folder %s: %w", path, err)
	}
	return nil
}

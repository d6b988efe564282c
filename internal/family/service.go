// Package family manages the member roster stored as a single JSON document
// on the disk, and authenticates logins against it.
package family

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avkorz/diskhub/internal/docstore"
	"github.com/avkorz/diskhub/internal/model"
	"github.com/avkorz/diskhub/internal/scope"
)

// DataPath is where the roster document lives.
const DataPath = "/family/family.json"

var (
	ErrInvalidCredentials = errors.New("family: invalid credentials")
	ErrMemberNotFound     = errors.New("family: member not found")
	ErrUsernameTaken      = errors.New("family: username already taken")
)

// Service is the family directory.
type Service struct {
	repo    *docstore.Repo
	folders docstore.Folders
	logger  *slog.Logger
}

func NewService(repo *docstore.Repo, folders docstore.Folders, logger *slog.Logger) *Service {
	return &Service{repo: repo, folders: folders, logger: logger}
}

func defaultData() model.FamilyData {
	return model.FamilyData{
		Members:  []model.FamilyMember{},
		Settings: model.FamilySettings{DefaultRole: model.RoleMember},
	}
}

// Authenticate checks username and password against the roster and, on
// success, stamps lastLogin and returns the member without the hash. An empty
// or missing roster simply fails the login.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.FamilyMember, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var found *model.FamilyMember
	_, err := docstore.UpdateJSON(ctx, s.repo, DataPath, defaultData(), func(data *model.FamilyData) error {
		for i := range data.Members {
			m := &data.Members[i]
			if m.Username != username || !m.IsActive {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
				return ErrInvalidCredentials
			}
			now := time.Now().UTC()
			m.LastLogin = &now
			cp := m.Sanitized()
			found = &cp
			return nil
		}
		return ErrInvalidCredentials
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member login", "username", username)
	return found, nil
}

// AddMemberParams are the fields accepted when creating a member.
type AddMemberParams struct {
	Name     string
	Username string
	Password string
	Role     string
}

// AddMember appends a member to the roster and creates their family folder.
// The folder create is best-effort: a failure is logged, not surfaced.
func (s *Service) AddMember(ctx context.Context, p AddMemberParams) (*model.FamilyMember, error) {
	p.Username = strings.TrimSpace(p.Username)
	folder, err := scope.MemberFolder(p.Username)
	if err != nil {
		return nil, fmt.Errorf("member folder: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created model.FamilyMember
	_, err = docstore.UpdateJSON(ctx, s.repo, DataPath, defaultData(), func(data *model.FamilyData) error {
		for _, m := range data.Members {
			if m.IsActive && m.Username == p.Username {
				return ErrUsernameTaken
			}
		}

		role := p.Role
		if role == "" {
			role = data.Settings.DefaultRole
		}
		if role == "" {
			role = model.RoleMember
		}

		created = model.FamilyMember{
			ID:           uuid.NewString(),
			Name:         p.Name,
			Username:     p.Username,
			PasswordHash: string(hash),
			Role:         role,
			FolderPath:   folder.String(),
			CreatedAt:    time.Now().UTC(),
			IsActive:     true,
		}
		data.Members = append(data.Members, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.folders.CreateFolder(ctx, folder.String()); err != nil {
		s.logger.Warn("create member folder", "username", p.Username, "error", err)
	}

	sanitized := created.Sanitized()
	return &sanitized, nil
}

// RemoveMember drops a member from the roster, then best-effort deletes their
// folder. Roster removal succeeding is what counts; folder cleanup failures
// are only logged.
func (s *Service) RemoveMember(ctx context.Context, id string) error {
	var folder string
	_, err := docstore.UpdateJSON(ctx, s.repo, DataPath, defaultData(), func(data *model.FamilyData) error {
		kept := data.Members[:0]
		for _, m := range data.Members {
			if m.ID == id {
				folder = m.FolderPath
				continue
			}
			kept = append(kept, m)
		}
		if folder == "" {
			return ErrMemberNotFound
		}
		data.Members = kept
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.folders.RemoveFolder(ctx, folder); err != nil {
		s.logger.Warn("remove member folder", "folder", folder, "error", err)
	}
	return nil
}

// ListMembers returns the roster with password hashes stripped.
func (s *Service) ListMembers(ctx context.Context) ([]model.FamilyMember, error) {
	data, err := docstore.ReadJSON(ctx, s.repo, DataPath, defaultData())
	if err != nil {
		return nil, err
	}

	members := make([]model.FamilyMember, 0, len(data.Members))
	for _, m := range data.Members {
		members = append(members, m.Sanitized())
	}
	return members, nil
}

// GetMember looks up a member by id, hash stripped.
func (s *Service) GetMember(ctx context.Context, id string) (*model.FamilyMember, error) {
	data, err := docstore.ReadJSON(ctx, s.repo, DataPath, defaultData())
	if err != nil {
		return nil, err
	}
	for _, m := range data.Members {
		if m.ID == id {
			cp := m.Sanitized()
			return &cp, nil
		}
	}
	return nil, ErrMemberNotFound
}

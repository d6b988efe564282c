// Package todo manages per-member to-do lists, all lists for a member living
// in one JSON document on the disk.
package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avkorz/diskhub/internal/docstore"
	"github.com/avkorz/diskhub/internal/model"
)

var (
	ErrListNotFound = errors.New("todo: list not found")
	ErrItemNotFound = errors.New("todo: item not found")
)

const defaultColor = "#3B82F6"

// Service is the to-do collection service.
type Service struct {
	repo   *docstore.Repo
	logger *slog.Logger
}

func NewService(repo *docstore.Repo, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// DocPath returns the backing document path for a member's lists.
func DocPath(member string) string {
	return fmt.Sprintf("/family/%s/todos/lists.json", member)
}

// Lists returns all lists for a member, empty when none exist yet.
func (s *Service) Lists(ctx context.Context, member string) ([]model.TodoList, error) {
	lists, err := docstore.ReadJSON(ctx, s.repo, DocPath(member), []model.TodoList{})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateListParams are the fields accepted when creating a list.
type CreateListParams struct {
	Name        string
	Description string
	Color       string
}

func (s *Service) CreateList(ctx context.Context, member string, p CreateListParams) (*model.TodoList, error) {
	if p.Color == "" {
		p.Color = defaultColor
	}

	now := time.Now().UTC()
	list := model.TodoList{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Items:       []model.TodoItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := docstore.UpdateJSON(ctx, s.repo, DocPath(member), []model.TodoList{}, func(lists *[]model.TodoList) error {
		*lists = append(*lists, list)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateListParams patch an existing list; nil fields are left unchanged.
type UpdateListParams struct {
	Name        *string
	Description *string
	Color       *string
}

func (s *Service) UpdateList(ctx context.Context, member, listID string, p UpdateListParams) (*model.TodoList, error) {
	var updated model.TodoList
	_, err := docstore.UpdateJSON(ctx, s.repo, DocPath(member), []model.TodoList{}, func(lists *[]model.TodoList) error {
		l := findList(*lists, listID)
		if l == nil {
			return ErrListNotFound
		}
		if p.Name != nil {
			l.Name = *p.Name
		}
		if p.Description != nil {
			l.Description = *p.Description
		}
		if p.Color != nil {
			l.Color = *p.Color
		}
		l.UpdatedAt = time.Now().UTC()
		updated = *l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteList(ctx context.Context, member, listID string) error {
	_, err := docstore.UpdateJSON(ctx, s.repo, DocPath(member), []model.TodoList{}, func(lists *[]model.TodoList) error {
		kept := (*lists)[:0]
		for _, l := range *lists {
			if l.ID != listID {
				kept = append(kept, l)
			}
		}
		if len(kept) == len(*lists) {
			return ErrListNotFound
		}
		*lists = kept
		return nil
	})
	return err
}

// CreateItemParams are the fields accepted when creating an item.
type CreateItemParams struct {
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     *time.Time
	Tags        []string
	CreatedBy   string
}

func (s *Service) CreateItem(ctx context.Context, member, listID string, p CreateItemParams) (*model.TodoItem, error) {
	if p.Priority == "" {
		p.Priority = model.PriorityMedium
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	now := time.Now().UTC()
	item := model.TodoItem{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Description: p.Description,
		Priority:    p.Priority,
		Category:    p.Category,
		DueDate:     p.DueDate,
		Tags:        p.Tags,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := docstore.UpdateJSON(ctx, s.repo, DocPath(member), []model.TodoList{}, func(lists *[]model.TodoList) error {
		l := findList(*lists, listID)
		if l == nil {
			return ErrListNotFound
		}
		l.Items = append(l.Items, item)
		l.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemParams patch an existing item; nil fields are left unchanged.
type UpdateItemParams struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	Category    *string
	DueDate     *time.Time
	Tags        []string
}

func (s *Service) UpdateItem(ctx context.Context, member, listID, itemID string, p UpdateItemParams) (*model.TodoItem, error) {
	var updated model.TodoItem
	_, err := docstore.UpdateJSON(ctx, s.repo, DocPath(member), []model.TodoList{}, func(lists *[]model.TodoList) error {
		l := findList(*lists, listID)
		if l == nil {
			return ErrListNotFound
		}
		it := findItem(l, itemID)
		if it == nil {
			return ErrItemNotFound
		}

		now := time.Now().UTC()
		if p.Title != nil {
			it.Title = *p.Title
		}
		if p.Description != nil {
			it.Description = *p.Description
		}
		if p.Priority != nil {
			it.Priority = *p.Priority
		}
		if p.Category != nil {
			it.Category = *p.Category
		}
		if p.DueDate != nil {
			it.DueDate = p.DueDate
		}
		if p.Tags != nil {
			it.Tags = p.Tags
		}
		if p.Completed != nil && *p.Completed != it.Completed {
			it.Completed = *p.Completed
			if it.Completed {
				it.CompletedAt = &now
			} else {
				it.CompletedAt = nil
			}
		}
		it.UpdatedAt = now
		l.UpdatedAt = now
		updated = *it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteItem(ctx context.Context, member, listID, itemID string) error {
	_, err := docstore.UpdateJSON(ctx, s.repo, DocPath(member), []model.TodoList{}, func(lists *[]model.TodoList) error {
		l := findList(*lists, listID)
		if l == nil {
			return ErrListNotFound
		}
		kept := l.Items[:0]
		for _, it := range l.Items {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(l.Items) {
			return ErrItemNotFound
		}
		l.Items = kept
		l.UpdatedAt = time.Now().UTC()
		return nil
	})
	return err
}

// DueSoon returns incomplete items across all of a member's lists whose due
// date falls inside the window. Used by the reminder scheduler.
func (s *Service) DueSoon(ctx context.Context, member string, window time.Duration) ([]model.TodoItem, error) {
	lists, err := s.Lists(ctx, member)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cutoff := now.Add(window)
	var due []model.TodoItem
	for _, l := range lists {
		for _, it := range l.Items {
			if it.Completed || it.DueDate == nil {
				continue
			}
			if it.DueDate.After(now.Add(-24*time.Hour)) && it.DueDate.Before(cutoff) {
				due = append(due, it)
			}
		}
	}
	return due, nil
}

func findList(lists []model.TodoList, id string) *model.TodoList {
	for i := range lists {
		if lists[i].ID == id {
			return &lists[i]
		}
	}
	return nil
}

func findItem(l *model.TodoList, id string) *model.TodoItem {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}

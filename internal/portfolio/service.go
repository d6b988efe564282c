// Package portfolio manages the project catalog stored as a single JSON
// document on the disk.
package portfolio

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avkorz/diskhub/internal/docstore"
	"github.com/avkorz/diskhub/internal/model"
)

// DataPath is where the catalog document lives.
const DataPath = "/portfolio/portfolio.json"

var ErrItemNotFound = errors.New("portfolio: item not found")

type Service struct {
	repo   *docstore.Repo
	logger *slog.Logger
}

func NewService(repo *docstore.Repo, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func emptyData() model.PortfolioData {
	return model.PortfolioData{Items: []model.PortfolioItem{}}
}

// Items returns the catalog, empty when the document does not exist yet.
func (s *Service) Items(ctx context.Context) ([]model.PortfolioItem, error) {
	data, err := docstore.ReadJSON(ctx, s.repo, DataPath, emptyData())
	if err != nil {
		return nil, err
	}
	return data.Items, nil
}

// CreateParams are the fields accepted when creating an item.
type CreateParams struct {
	Title           string
	Description     string
	LongDescription string
	Category        string
	Tags            []string
	Images          []string
	DemoURL         string
	GithubURL       string
	Technologies    []string
	Status          string
	Featured        bool
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*model.PortfolioItem, error) {
	if p.Status == "" {
		p.Status = model.StatusPlanned
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}

	now := time.Now().UTC()
	item := model.PortfolioItem{
		ID:              uuid.NewString(),
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Category:        p.Category,
		Tags:            p.Tags,
		Images:          p.Images,
		DemoURL:         p.DemoURL,
		GithubURL:       p.GithubURL,
		Technologies:    p.Technologies,
		Status:          p.Status,
		Featured:        p.Featured,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := docstore.UpdateJSON(ctx, s.repo, DataPath, emptyData(), func(data *model.PortfolioData) error {
		data.Items = append(data.Items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateParams patch an existing item; nil fields are left unchanged.
type UpdateParams struct {
	Title           *string
	Description     *string
	LongDescription *string
	Category        *string
	Tags            []string
	Images          []string
	DemoURL         *string
	GithubURL       *string
	Technologies    []string
	Status          *string
	Featured        *bool
}

func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (*model.PortfolioItem, error) {
	var updated model.PortfolioItem
	_, err := docstore.UpdateJSON(ctx, s.repo, DataPath, emptyData(), func(data *model.PortfolioData) error {
		var it *model.PortfolioItem
		for i := range data.Items {
			if data.Items[i].ID == id {
				it = &data.Items[i]
				break
			}
		}
		if it == nil {
			return ErrItemNotFound
		}

		if p.Title != nil {
			it.Title = *p.Title
		}
		if p.Description != nil {
			it.Description = *p.Description
		}
		if p.LongDescription != nil {
			it.LongDescription = *p.LongDescription
		}
		if p.Category != nil {
			it.Category = *p.Category
		}
		if p.Tags != nil {
			it.Tags = p.Tags
		}
		if p.Images != nil {
			it.Images = p.Images
		}
		if p.DemoURL != nil {
			it.DemoURL = *p.DemoURL
		}
		if p.GithubURL != nil {
			it.GithubURL = *p.GithubURL
		}
		if p.Technologies != nil {
			it.Technologies = p.Technologies
		}
		if p.Status != nil {
			it.Status = *p.Status
		}
		if p.Featured != nil {
			it.Featured = *p.Featured
		}
		it.UpdatedAt = time.Now().UTC()
		updated = *it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := docstore.UpdateJSON(ctx, s.repo, DataPath, emptyData(), func(data *model.PortfolioData) error {
		kept := data.Items[:0]
		for _, it := range data.Items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(data.Items) {
			return ErrItemNotFound
		}
		data.Items = kept
		return nil
	})
	return err
}

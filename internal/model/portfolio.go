package model

import "time"

// Portfolio item statuses.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in-progress"
	StatusPlanned    = "planned"
)

// PortfolioItem is one catalog entry.
type PortfolioItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription,omitempty"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	Images          []string  `json:"images"`
	DemoURL         string    `json:"demoUrl,omitempty"`
	GithubURL       string    `json:"githubUrl,omitempty"`
	Technologies    []string  `json:"technologies"`
	Status          string    `json:"status"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PortfolioData wraps the item list inside the backing document.
type PortfolioData struct {
	Items []PortfolioItem `json:"items"`
}

// BudgetEntry is free-form: the finance documents are written by other tools
// and only read here.
type BudgetEntry map[string]any

package projects

import "time"

// Status values for a portfolio project.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Project is a portfolio entry shown on the marketing site.
type Project struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Summary      string     `json:"summary"`
	Description  string     `json:"description"`
	Location     *string    `json:"location,omitempty"`
	Status       string     `json:"status"`
	CoverMediaID *int64     `json:"cover_media_id,omitempty"`
	SortOrder    int        `json:"sort_order"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

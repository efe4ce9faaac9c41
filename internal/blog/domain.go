package blog

import "time"

// Status values for a blog post.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is a blog entry on the marketing site.
type Post struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	Body         string     `json:"body"`
	Status       string     `json:"status"`
	CoverMediaID *int64     `json:"cover_media_id,omitempty"`
	AuthorID     int64      `json:"author_id"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

package blog

import (
	"context"
	"time"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// Service wraps blog business rules.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListPosts returns every post for the admin console.
func (s *Service) ListPosts(ctx context.Context) ([]Post, error) {
	return s.repo.ListPosts(ctx, false)
}

// ListPublished returns published posts for the public site.
func (s *Service) ListPublished(ctx context.Context) ([]Post, error) {
	return s.repo.ListPosts(ctx, true)
}

// GetPost fetches a post by id.
func (s *Service) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetPost(ctx, id)
}

// GetPublishedBySlug fetches a published post by slug. Drafts behave as if
// they do not exist.
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*Post, error) {
	post, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.Status != StatusPublished {
		return nil, shared.ErrNotFound
	}
	return post, nil
}

// CreatePost builds and stores a new post authored by authorID.
func (s *Service) CreatePost(ctx context.Context, authorID int64, req CreatePostRequest) (*Post, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	post := Post{
		Title:        req.Title,
		Slug:         shared.Slugify(req.Title),
		Excerpt:      req.Excerpt,
		Body:         req.Body,
		Status:       status,
		CoverMediaID: req.CoverMediaID,
		AuthorID:     authorID,
	}
	if status == StatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	return s.repo.CreatePost(ctx, post)
}

// UpdatePost applies a partial update. Publishing stamps published_at once;
// reverting to draft clears it.
func (s *Service) UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = shared.Slugify(*req.Title)
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.CoverMediaID != nil {
		post.CoverMediaID = req.CoverMediaID
	}
	if req.Status != nil && *req.Status != post.Status {
		post.Status = *req.Status
		switch *req.Status {
		case StatusPublished:
			now := time.Now().UTC()
			post.PublishedAt = &now
		case StatusDraft:
			post.PublishedAt = nil
		}
	}
	return s.repo.UpdatePost(ctx, *post)
}

// DeletePost removes a post.
func (s *Service) DeletePost(ctx context.Context, id int64) error {
	return s.repo.DeletePost(ctx, id)
}

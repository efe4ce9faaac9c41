package projects

import (
	"context"
	"time"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// Service wraps project business rules.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListProjects returns every project for the admin console.
func (s *Service) ListProjects(ctx context.Context) ([]Project, error) {
	return s.repo.ListProjects(ctx, false)
}

// ListPublished returns only published projects for the public site.
func (s *Service) ListPublished(ctx context.Context) ([]Project, error) {
	return s.repo.ListProjects(ctx, true)
}

// GetProject fetches a project by id.
func (s *Service) GetProject(ctx context.Context, id int64) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

// GetPublishedBySlug fetches a published project by slug for the public site.
// Drafts behave as if they do not exist.
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*Project, error) {
	project, err := s.repo.GetProjectBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project.Status != StatusPublished {
		return nil, shared.ErrNotFound
	}
	return project, nil
}

// CreateProject builds and stores a new project, deriving the slug from the
// title and stamping published_at on immediate publishes.
func (s *Service) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	project := Project{
		Title:        req.Title,
		Slug:         shared.Slugify(req.Title),
		Summary:      req.Summary,
		Description:  req.Description,
		Location:     req.Location,
		Status:       status,
		CoverMediaID: req.CoverMediaID,
		SortOrder:    req.SortOrder,
	}
	if status == StatusPublished {
		now := time.Now().UTC()
		project.PublishedAt = &now
	}
	return s.repo.CreateProject(ctx, project)
}

// UpdateProject applies a partial update to an existing project. A status
// flip to published sets published_at once; reverting to draft clears it.
func (s *Service) UpdateProject(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	return s.repo.MutateProject(ctx, id, func(project *Project) error {
		if req.Title != nil {
			project.Title = *req.Title
			project.Slug = shared.Slugify(*req.Title)
		}
		if req.Summary != nil {
			project.Summary = *req.Summary
		}
		if req.Description != nil {
			project.Description = *req.Description
		}
		if req.Location != nil {
			project.Location = req.Location
		}
		if req.CoverMediaID != nil {
			project.CoverMediaID = req.CoverMediaID
		}
		if req.SortOrder != nil {
			project.SortOrder = *req.SortOrder
		}
		if req.Status != nil && *req.Status != project.Status {
			project.Status = *req.Status
			switch *req.Status {
			case StatusPublished:
				now := time.Now().UTC()
				project.PublishedAt = &now
			case StatusDraft:
				project.PublishedAt = nil
			}
		}
		return nil
	})
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	return s.repo.DeleteProject(ctx, id)
}

package projects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
	_ "github.com/ridgeline-builders/ridgeline/testing"
)

type memoryRepo struct {
	nextID   int64
	projects map[int64]Project
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, projects: make(map[int64]Project)}
}

func (m *memoryRepo) ListProjects(_ context.Context, publishedOnly bool) ([]Project, error) {
	var out []Project
	for _, p := range m.projects {
		if publishedOnly && p.Status != StatusPublished {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryRepo) GetProject(_ context.Context, id int64) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (m *memoryRepo) GetProjectBySlug(_ context.Context, slug string) (*Project, error) {
	for _, p := range m.projects {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryRepo) CreateProject(_ context.Context, project Project) (*Project, error) {
	for _, p := range m.projects {
		if p.Slug == project.Slug {
			return nil, shared.ErrDuplicate
		}
	}
	project.ID = m.nextID
	m.nextID++
	project.CreatedAt = time.Now().UTC()
	project.UpdatedAt = project.CreatedAt
	m.projects[project.ID] = project
	return &project, nil
}

func (m *memoryRepo) MutateProject(_ context.Context, id int64, fn func(*Project) error) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()
	m.projects[id] = p
	return &p, nil
}

func (m *memoryRepo) DeleteProject(_ context.Context, id int64) error {
	if _, ok := m.projects[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func TestCreateProjectDerivesSlugAndDefaultsToDraft(t *testing.T) {
	svc := NewService(newMemoryRepo())

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Title:       "Hillside Kitchen Remodel",
		Summary:     "Full gut renovation",
		Description: "Cabinets, counters, structural work.",
	})
	require.NoError(t, err)
	require.Equal(t, "hillside-kitchen-remodel", project.Slug)
	require.Equal(t, StatusDraft, project.Status)
	require.Nil(t, project.PublishedAt)
}

func TestCreateProjectPublishedStampsPublishedAt(t *testing.T) {
	svc := NewService(newMemoryRepo())

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Title:       "Downtown Office Build-Out",
		Summary:     "Commercial TI",
		Description: "4,000 sqft office fit out.",
		Status:      StatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, project.PublishedAt)
}

func TestUpdateProjectPublishFlow(t *testing.T) {
	svc := NewService(newMemoryRepo())

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Title:       "Cedar Deck",
		Summary:     "Backyard deck",
		Description: "Cedar deck with railing.",
	})
	require.NoError(t, err)

	published := StatusPublished
	updated, err := svc.UpdateProject(context.Background(), project.ID, UpdateProjectRequest{Status: &published})
	require.NoError(t, err)
	require.Equal(t, StatusPublished, updated.Status)
	require.NotNil(t, updated.PublishedAt)

	draft := StatusDraft
	reverted, err := svc.UpdateProject(context.Background(), project.ID, UpdateProjectRequest{Status: &draft})
	require.NoError(t, err)
	require.Nil(t, reverted.PublishedAt)
}

func TestUpdateProjectTitleReslugs(t *testing.T) {
	svc := NewService(newMemoryRepo())

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Title:       "Old Name",
		Summary:     "s",
		Description: "d",
	})
	require.NoError(t, err)

	title := "Crème Brûlée Café Build-Out"
	updated, err := svc.UpdateProject(context.Background(), project.ID, UpdateProjectRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "creme-brulee-cafe-build-out", updated.Slug)
}

func TestGetPublishedBySlugHidesDrafts(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Title:       "Secret Draft",
		Summary:     "s",
		Description: "d",
	})
	require.NoError(t, err)

	_, err = svc.GetPublishedBySlug(context.Background(), "secret-draft")
	require.ErrorIs(t, err, shared.ErrNotFound)

	published, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Title:       "Public Project",
		Summary:     "s",
		Description: "d",
		Status:      StatusPublished,
	})
	require.NoError(t, err)

	got, err := svc.GetPublishedBySlug(context.Background(), published.Slug)
	require.NoError(t, err)
	require.Equal(t, published.ID, got.ID)
}

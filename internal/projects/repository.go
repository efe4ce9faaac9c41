package projects

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgeline-builders/ridgeline/internal/platform/db"
	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// RepositoryPort defines data access methods for projects.
type RepositoryPort interface {
	ListProjects(ctx context.Context, publishedOnly bool) ([]Project, error)
	GetProject(ctx context.Context, id int64) (*Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*Project, error)
	CreateProject(ctx context.Context, project Project) (*Project, error)
	MutateProject(ctx context.Context, id int64, fn func(*Project) error) (*Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const projectColumns = `id, title, slug, summary, description, location, status, cover_media_id, sort_order, published_at, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Description, &p.Location, &p.Status, &p.CoverMediaID, &p.SortOrder, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListProjects returns projects ordered by sort order then recency. With
// publishedOnly set, drafts are excluded.
func (r *Repository) ListProjects(ctx context.Context, publishedOnly bool) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if publishedOnly {
		query += ` WHERE status = 'published'`
	}
	query += ` ORDER BY sort_order, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Description, &p.Location, &p.Status, &p.CoverMediaID, &p.SortOrder, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a project by id.
func (r *Repository) GetProject(ctx context.Context, id int64) (*Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// GetProjectBySlug fetches a project by slug.
func (r *Repository) GetProjectBySlug(ctx context.Context, slug string) (*Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug))
}

// CreateProject inserts a new project. Duplicate slugs map to shared.ErrDuplicate.
func (r *Repository) CreateProject(ctx context.Context, project Project) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (title, slug, summary, description, location, status, cover_media_id, sort_order, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+projectColumns,
		project.Title, project.Slug, project.Summary, project.Description, project.Location,
		project.Status, project.CoverMediaID, project.SortOrder, project.PublishedAt)
	created, err := scanProject(row)
	if err != nil {
		return nil, mapPGError(err)
	}
	return created, nil
}

// MutateProject applies fn to the row inside a repeatable-read transaction
// with the row locked, so concurrent edits cannot interleave between read
// and write.
func (r *Repository) MutateProject(ctx context.Context, id int64, fn func(*Project) error) (*Project, error) {
	var updated *Project
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		project, err := scanProject(tx.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if err := fn(project); err != nil {
			return err
		}
		row := tx.QueryRow(ctx, `
			UPDATE projects
			SET title = $2, slug = $3, summary = $4, description = $5, location = $6,
			    status = $7, cover_media_id = $8, sort_order = $9, published_at = $10, updated_at = NOW()
			WHERE id = $1
			RETURNING `+projectColumns,
			project.ID, project.Title, project.Slug, project.Summary, project.Description, project.Location,
			project.Status, project.CoverMediaID, project.SortOrder, project.PublishedAt)
		updated, err = scanProject(row)
		if err != nil {
			return mapPGError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes a project by id.
func (r *Repository) DeleteProject(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func mapPGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	return err
}

var _ RepositoryPort = (*Repository)(nil)

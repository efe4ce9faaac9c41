package media

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// RepositoryPort defines data access methods for media rows.
type RepositoryPort interface {
	ListMedia(ctx context.Context) ([]Media, error)
	GetMedia(ctx context.Context, id int64) (*Media, error)
	CreateMedia(ctx context.Context, m Media) (*Media, error)
	UpdateMedia(ctx context.Context, m Media) (*Media, error)
	DeleteMedia(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const mediaColumns = `id, key, file_name, content_type, size_bytes, alt_text, created_by, created_at`

func scanMedia(row pgx.Row) (*Media, error) {
	var m Media
	err := row.Scan(&m.ID, &m.Key, &m.FileName, &m.ContentType, &m.SizeBytes, &m.AltText, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListMedia returns media rows newest first.
func (r *Repository) ListMedia(ctx context.Context) ([]Media, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+mediaColumns+` FROM media ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.Key, &m.FileName, &m.ContentType, &m.SizeBytes, &m.AltText, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetMedia fetches a media row by id.
func (r *Repository) GetMedia(ctx context.Context, id int64) (*Media, error) {
	return scanMedia(r.pool.QueryRow(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = $1`, id))
}

// CreateMedia inserts a metadata row.
func (r *Repository) CreateMedia(ctx context.Context, m Media) (*Media, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO media (key, file_name, content_type, size_bytes, alt_text, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+mediaColumns,
		m.Key, m.FileName, m.ContentType, m.SizeBytes, m.AltText, m.CreatedBy)
	return scanMedia(row)
}

// UpdateMedia persists mutable metadata of a media row.
func (r *Repository) UpdateMedia(ctx context.Context, m Media) (*Media, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE media SET file_name = $2, alt_text = $3 WHERE id = $1
		RETURNING `+mediaColumns,
		m.ID, m.FileName, m.AltText)
	return scanMedia(row)
}

// DeleteMedia removes a media row by id.
func (r *Repository) DeleteMedia(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)

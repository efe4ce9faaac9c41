package blog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// RepositoryPort defines data access methods for posts.
type RepositoryPort interface {
	ListPosts(ctx context.Context, publishedOnly bool) ([]Post, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	CreatePost(ctx context.Context, post Post) (*Post, error)
	UpdatePost(ctx context.Context, post Post) (*Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const postColumns = `id, title, slug, excerpt, body, status, cover_media_id, author_id, published_at, created_at, updated_at`

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.Status, &p.CoverMediaID, &p.AuthorID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListPosts returns posts newest first. With publishedOnly set, drafts are
// excluded and ordering follows publication time.
func (r *Repository) ListPosts(ctx context.Context, publishedOnly bool) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts ORDER BY created_at DESC`
	if publishedOnly {
		query = `SELECT ` + postColumns + ` FROM blog_posts WHERE status = 'published' ORDER BY published_at DESC`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.Status, &p.CoverMediaID, &p.AuthorID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a post by id.
func (r *Repository) GetPost(ctx context.Context, id int64) (*Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id))
}

// GetPostBySlug fetches a post by slug.
func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE slug = $1`, slug))
}

// CreatePost inserts a new post. Duplicate slugs map to shared.ErrDuplicate.
func (r *Repository) CreatePost(ctx context.Context, post Post) (*Post, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blog_posts (title, slug, excerpt, body, status, cover_media_id, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+postColumns,
		post.Title, post.Slug, post.Excerpt, post.Body, post.Status, post.CoverMediaID, post.AuthorID, post.PublishedAt)
	created, err := scanPost(row)
	if err != nil {
		return nil, mapPGError(err)
	}
	return created, nil
}

// UpdatePost persists mutable fields of an existing post.
func (r *Repository) UpdatePost(ctx context.Context, post Post) (*Post, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE blog_posts
		SET title = $2, slug = $3, excerpt = $4, body = $5, status = $6,
		    cover_media_id = $7, published_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Body, post.Status, post.CoverMediaID, post.PublishedAt)
	updated, err := scanPost(row)
	if err != nil {
		return nil, mapPGError(err)
	}
	return updated, nil
}

// DeletePost removes a post by id.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
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

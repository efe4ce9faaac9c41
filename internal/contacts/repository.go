package contacts

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// RepositoryPort defines data access methods for contacts.
type RepositoryPort interface {
	ListContacts(ctx context.Context, status string, limit, offset int) ([]Contact, error)
	CountContacts(ctx context.Context, status string) (int, error)
	GetContact(ctx context.Context, id int64) (*Contact, error)
	CreateContact(ctx context.Context, c Contact) (*Contact, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Contact, error)
	DeleteContact(ctx context.Context, id int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const contactColumns = `id, name, email, phone, subject, message, status, client_ip, created_at, updated_at`

func scanContact(row pgx.Row) (*Contact, error) {
	var c Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.ClientIP, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListContacts returns a page of contacts newest first, optionally filtered
// by status.
func (r *Repository) ListContacts(ctx context.Context, status string, limit, offset int) ([]Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	args := []any{limit, offset}
	if status != "" {
		query = `SELECT ` + contactColumns + ` FROM contacts WHERE status = $3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, status)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.ClientIP, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountContacts returns how many contacts match the status filter.
func (r *Repository) CountContacts(ctx context.Context, status string) (int, error) {
	query := `SELECT COUNT(*) FROM contacts`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// GetContact fetches a contact by id.
func (r *Repository) GetContact(ctx context.Context, id int64) (*Contact, error) {
	return scanContact(r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
}

// CreateContact inserts an inbound inquiry.
func (r *Repository) CreateContact(ctx context.Context, c Contact) (*Contact, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (name, email, phone, subject, message, status, client_ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Subject, c.Message, c.Status, c.ClientIP)
	return scanContact(row)
}

// UpdateStatus moves a contact to a new pipeline status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) (*Contact, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE contacts SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING `+contactColumns,
		id, status)
	return scanContact(row)
}

// DeleteContact removes a contact by id.
func (r *Repository) DeleteContact(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteOlderThan purges contacts created before cutoff, returning the count.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ RepositoryPort = (*Repository)(nil)

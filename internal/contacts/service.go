package contacts

import (
	"context"
	"log/slog"
	"time"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// Enqueuer pushes a new-contact notification onto the job queue. Implemented
// by the jobs client; tests substitute a stub.
type Enqueuer interface {
	EnqueueContactNotification(ctx context.Context, contactID int64) error
}

// Service wraps contact inquiry rules.
type Service struct {
	logger   *slog.Logger
	repo     RepositoryPort
	enqueuer Enqueuer
}

// NewService constructs a Service. enqueuer may be nil when the worker is
// not deployed.
func NewService(logger *slog.Logger, repo RepositoryPort, enqueuer Enqueuer) *Service {
	return &Service{logger: logger, repo: repo, enqueuer: enqueuer}
}

// Submit stores a contact-form submission and queues a notification.
// Honeypot hits are silently dropped: the bot sees success, nothing is
// stored.
func (s *Service) Submit(ctx context.Context, req SubmitContactRequest, clientIP string) (*Contact, error) {
	if req.Website != "" {
		s.logger.Info("honeypot tripped", slog.String("ip", clientIP))
		return nil, nil
	}

	contact, err := s.repo.CreateContact(ctx, Contact{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		Status:   StatusNew,
		ClientIP: clientIP,
	})
	if err != nil {
		return nil, err
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueContactNotification(ctx, contact.ID); err != nil {
			s.logger.Warn("enqueue contact notification", slog.Int64("contact_id", contact.ID), slog.Any("error", err))
		}
	}
	return contact, nil
}

// ListContacts returns a page of inquiries, optionally filtered by status.
func (s *Service) ListContacts(ctx context.Context, status string, page, perPage int) ([]Contact, shared.Pagination, error) {
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	total, err := s.repo.CountContacts(ctx, status)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	contacts, err := s.repo.ListContacts(ctx, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return contacts, shared.NewPagination(page, perPage, total), nil
}

// GetContact fetches one inquiry.
func (s *Service) GetContact(ctx context.Context, id int64) (*Contact, error) {
	return s.repo.GetContact(ctx, id)
}

// UpdateStatus moves an inquiry through the pipeline.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*Contact, error) {
	return s.repo.UpdateStatus(ctx, id, status)
}

// DeleteContact removes an inquiry.
func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	return s.repo.DeleteContact(ctx, id)
}

// Cleanup purges inquiries older than the retention window. Run from the
// scheduler.
func (s *Service) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	purged, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.logger.Info("contact retention cleanup", slog.Int64("purged", purged))
	}
	return purged, nil
}

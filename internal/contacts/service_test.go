package contacts

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
	_ "github.com/ridgeline-builders/ridgeline/testing"
)

type memoryRepo struct {
	nextID   int64
	contacts map[int64]Contact
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, contacts: make(map[int64]Contact)}
}

func (m *memoryRepo) ListContacts(_ context.Context, status string, limit, offset int) ([]Contact, error) {
	var out []Contact
	for _, c := range m.contacts {
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryRepo) CountContacts(_ context.Context, status string) (int, error) {
	n := 0
	for _, c := range m.contacts {
		if status == "" || c.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) GetContact(_ context.Context, id int64) (*Contact, error) {
	c, ok := m.contacts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (m *memoryRepo) CreateContact(_ context.Context, c Contact) (*Contact, error) {
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.contacts[c.ID] = c
	return &c, nil
}

func (m *memoryRepo) UpdateStatus(_ context.Context, id int64, status string) (*Contact, error) {
	c, ok := m.contacts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	m.contacts[id] = c
	return &c, nil
}

func (m *memoryRepo) DeleteContact(_ context.Context, id int64) error {
	if _, ok := m.contacts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.contacts, id)
	return nil
}

func (m *memoryRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for id, c := range m.contacts {
		if c.CreatedAt.Before(cutoff) {
			delete(m.contacts, id)
			purged++
		}
	}
	return purged, nil
}

type stubEnqueuer struct {
	enqueued []int64
}

func (s *stubEnqueuer) EnqueueContactNotification(_ context.Context, contactID int64) error {
	s.enqueued = append(s.enqueued, contactID)
	return nil
}

func newTestService() (*Service, *memoryRepo, *stubEnqueuer) {
	repo := newMemoryRepo()
	enq := &stubEnqueuer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repo, enq), repo, enq
}

func TestSubmitStoresAndNotifies(t *testing.T) {
	svc, repo, enq := newTestService()

	contact, err := svc.Submit(context.Background(), SubmitContactRequest{
		Name:    "Pat Garner",
		Email:   "pat@example.com",
		Message: "Looking for a quote on a garage addition.",
	}, "203.0.113.5")
	require.NoError(t, err)
	require.NotNil(t, contact)
	require.Equal(t, StatusNew, contact.Status)
	require.Equal(t, "203.0.113.5", contact.ClientIP)
	require.Len(t, repo.contacts, 1)
	require.Equal(t, []int64{contact.ID}, enq.enqueued)
}

func TestSubmitHoneypotDropsSilently(t *testing.T) {
	svc, repo, enq := newTestService()

	contact, err := svc.Submit(context.Background(), SubmitContactRequest{
		Name:    "Bot",
		Email:   "bot@example.com",
		Message: "cheap backlinks for your website today",
		Website: "https://spam.example",
	}, "198.51.100.1")
	require.NoError(t, err)
	require.Nil(t, contact)
	require.Empty(t, repo.contacts)
	require.Empty(t, enq.enqueued)
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := newTestService()

	contact, err := svc.Submit(context.Background(), SubmitContactRequest{
		Name:    "Pat Garner",
		Email:   "pat@example.com",
		Message: "Looking for a quote on a garage addition.",
	}, "203.0.113.5")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), contact.ID, StatusInReview)
	require.NoError(t, err)
	require.Equal(t, StatusInReview, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), 999, StatusClosed)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListContactsPaginates(t *testing.T) {
	svc, _, _ := newTestService()

	for i := 0; i < 5; i++ {
		_, err := svc.Submit(context.Background(), SubmitContactRequest{
			Name:    "Pat Garner",
			Email:   "pat@example.com",
			Message: "Looking for a quote on a garage addition.",
		}, "203.0.113.5")
		require.NoError(t, err)
	}

	page, pagination, err := svc.ListContacts(context.Background(), "", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, 2, pagination.Page)
	require.Equal(t, 5, pagination.Total)
	require.Equal(t, 3, pagination.TotalPages)

	last, pagination, err := svc.ListContacts(context.Background(), "", 3, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)
	require.Equal(t, 3, pagination.TotalPages)
}

func TestCleanupPurgesOldContacts(t *testing.T) {
	svc, repo, _ := newTestService()

	old := Contact{Name: "Old", Email: "old@example.com", Message: "old message here", Status: StatusClosed}
	created, err := repo.CreateContact(context.Background(), old)
	require.NoError(t, err)
	stale := repo.contacts[created.ID]
	stale.CreatedAt = time.Now().UTC().Add(-400 * 24 * time.Hour)
	repo.contacts[created.ID] = stale

	_, err = svc.Submit(context.Background(), SubmitContactRequest{
		Name:    "Fresh",
		Email:   "fresh@example.com",
		Message: "recent inquiry about a remodel",
	}, "203.0.113.9")
	require.NoError(t, err)

	purged, err := svc.Cleanup(context.Background(), 365*24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)
	require.Len(t, repo.contacts, 1)
}

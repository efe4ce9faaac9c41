package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
	_ "github.com/ridgeline-builders/ridgeline/testing"
)

type memoryRepo struct {
	nextID int64
	rows   map[int64]Media
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, rows: make(map[int64]Media)}
}

func (m *memoryRepo) ListMedia(_ context.Context) ([]Media, error) {
	var out []Media
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out, nil
}

func (m *memoryRepo) GetMedia(_ context.Context, id int64) (*Media, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &row, nil
}

func (m *memoryRepo) CreateMedia(_ context.Context, row Media) (*Media, error) {
	row.ID = m.nextID
	m.nextID++
	row.CreatedAt = time.Now().UTC()
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memoryRepo) UpdateMedia(_ context.Context, row Media) (*Media, error) {
	if _, ok := m.rows[row.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memoryRepo) DeleteMedia(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type stubStore struct {
	deleted   []string
	deleteErr error
}

func (s *stubStore) PresignUpload(_ context.Context, key, _ string) (string, error) {
	return "https://store.example/put/" + key, nil
}

func (s *stubStore) PresignDownload(_ context.Context, key string) (string, error) {
	return "https://store.example/get/" + key, nil
}

func (s *stubStore) DeleteObject(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.deleteErr
}

func newTestService(store *stubStore) (*Service, *memoryRepo) {
	repo := newMemoryRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repo, store), repo
}

func TestNewObjectKeyLayout(t *testing.T) {
	key := NewObjectKey(time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC))
	require.Regexp(t, regexp.MustCompile(`^media/2026/03/07/[0-9a-f-]{36}$`), key)
}

func TestCreateUploadReturnsRowAndURL(t *testing.T) {
	svc, repo := newTestService(&stubStore{})
	svc.now = func() time.Time { return time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC) }

	alt := "finished kitchen"
	resp, err := svc.CreateUpload(context.Background(), 7, CreateUploadRequest{
		FileName:    "kitchen.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   1024,
		AltText:     &alt,
	})
	require.NoError(t, err)
	require.Equal(t, "kitchen.jpg", resp.Media.FileName)
	require.Equal(t, int64(7), resp.Media.CreatedBy)
	require.Contains(t, resp.UploadURL, resp.Media.Key)
	require.Contains(t, resp.Media.Key, "media/2026/03/07/")
	require.Len(t, repo.rows, 1)
}

func TestDownloadURL(t *testing.T) {
	svc, _ := newTestService(&stubStore{})

	resp, err := svc.CreateUpload(context.Background(), 1, CreateUploadRequest{
		FileName:    "deck.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   2048,
	})
	require.NoError(t, err)

	dl, err := svc.DownloadURL(context.Background(), resp.Media.ID)
	require.NoError(t, err)
	require.Equal(t, "https://store.example/get/"+resp.Media.Key, dl.DownloadURL)

	_, err = svc.DownloadURL(context.Background(), 999)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteMediaRemovesRowAndObject(t *testing.T) {
	store := &stubStore{}
	svc, repo := newTestService(store)

	resp, err := svc.CreateUpload(context.Background(), 1, CreateUploadRequest{
		FileName:    "plan.pdf",
		ContentType: "application/pdf",
		SizeBytes:   4096,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMedia(context.Background(), resp.Media.ID))
	require.Empty(t, repo.rows)
	require.Equal(t, []string{resp.Media.Key}, store.deleted)
}

func TestDeleteMediaToleratesStoreFailure(t *testing.T) {
	store := &stubStore{deleteErr: errors.New("store down")}
	svc, repo := newTestService(store)

	resp, err := svc.CreateUpload(context.Background(), 1, CreateUploadRequest{
		FileName:    "plan.pdf",
		ContentType: "application/pdf",
		SizeBytes:   4096,
	})
	require.NoError(t, err)

	// Metadata removal wins; the orphaned object is only logged.
	require.NoError(t, svc.DeleteMedia(context.Background(), resp.Media.ID))
	require.Empty(t, repo.rows)
}

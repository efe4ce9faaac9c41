package media

import (
	"context"
	"log/slog"
	"time"
)

// Service wraps the media library rules: metadata rows in Postgres, bytes in
// the object store via presigned URLs.
type Service struct {
	logger *slog.Logger
	repo   RepositoryPort
	store  ObjectStore
	now    func() time.Time
}

// NewService constructs a Service.
func NewService(logger *slog.Logger, repo RepositoryPort, store ObjectStore) *Service {
	return &Service{logger: logger, repo: repo, store: store, now: time.Now}
}

// ListMedia returns all media rows.
func (s *Service) ListMedia(ctx context.Context) ([]Media, error) {
	return s.repo.ListMedia(ctx)
}

// GetMedia fetches one media row.
func (s *Service) GetMedia(ctx context.Context, id int64) (*Media, error) {
	return s.repo.GetMedia(ctx, id)
}

// CreateUpload allocates a storage key, records the metadata row and returns
// a presigned PUT URL for the client to upload the bytes to.
func (s *Service) CreateUpload(ctx context.Context, actorID int64, req CreateUploadRequest) (*UploadResponse, error) {
	key := NewObjectKey(s.now().UTC())

	uploadURL, err := s.store.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateMedia(ctx, Media{
		Key:         key,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		AltText:     req.AltText,
		CreatedBy:   actorID,
	})
	if err != nil {
		return nil, err
	}

	return &UploadResponse{Media: *created, UploadURL: uploadURL}, nil
}

// DownloadURL returns a presigned GET URL for the object behind id.
func (s *Service) DownloadURL(ctx context.Context, id int64) (*DownloadResponse, error) {
	m, err := s.repo.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.store.PresignDownload(ctx, m.Key)
	if err != nil {
		return nil, err
	}
	return &DownloadResponse{DownloadURL: url}, nil
}

// UpdateMedia applies a partial metadata update.
func (s *Service) UpdateMedia(ctx context.Context, id int64, req UpdateMediaRequest) (*Media, error) {
	m, err := s.repo.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FileName != nil {
		m.FileName = *req.FileName
	}
	if req.AltText != nil {
		m.AltText = req.AltText
	}
	return s.repo.UpdateMedia(ctx, *m)
}

// DeleteMedia removes the metadata row and, best effort, the stored object.
func (s *Service) DeleteMedia(ctx context.Context, id int64) error {
	m, err := s.repo.GetMedia(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMedia(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteObject(ctx, m.Key); err != nil {
		s.logger.Warn("delete stored object", slog.String("key", m.Key), slog.Any("error", err))
	}
	return nil
}

package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ridgeline-builders/ridgeline/internal/ai"
	"github.com/ridgeline-builders/ridgeline/internal/blog"
	"github.com/ridgeline-builders/ridgeline/internal/contacts"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskContactNotify announces a new contact-form submission.
	TaskContactNotify = "contacts:notify"
	// TaskContactCleanup purges contacts past the retention window.
	TaskContactCleanup = "contacts:cleanup"
	// TaskBlogDraft generates a blog draft in the background.
	TaskBlogDraft = "ai:blogdraft"
)

// ContactNotifyPayload identifies the submission to announce.
type ContactNotifyPayload struct {
	ContactID int64 `json:"contact_id"`
}

// ContactCleanupPayload carries the retention window for the purge.
type ContactCleanupPayload struct {
	RetentionHours int64 `json:"retention_hours"`
}

// BlogDraftPayload describes a draft to generate and store.
type BlogDraftPayload struct {
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	AuthorID int64  `json:"author_id"`
}

// NewContactNotifyTask constructs an Asynq task.
func NewContactNotifyTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactNotify, data), nil
}

// NewContactCleanupTask constructs an Asynq task.
func NewContactCleanupTask(payload ContactCleanupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactCleanup, data), nil
}

// NewBlogDraftTask constructs an Asynq task.
func NewBlogDraftTask(payload BlogDraftPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBlogDraft, data), nil
}

// NewContactNotifyHandler announces new submissions. Delivery channels
// (email, chat) live outside this service; the handler records the event so
// operators can tail the worker log.
func NewContactNotifyHandler(logger *slog.Logger, svc *contacts.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ContactNotifyPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		contact, err := svc.GetContact(ctx, payload.ContactID)
		if err != nil {
			return err
		}
		logger.Info("new contact inquiry",
			slog.Int64("contact_id", contact.ID),
			slog.String("name", contact.Name),
			slog.String("email", contact.Email))
		return nil
	}
}

// NewContactCleanupHandler purges contacts past the retention window.
func NewContactCleanupHandler(logger *slog.Logger, svc *contacts.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ContactCleanupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		purged, err := svc.Cleanup(ctx, time.Duration(payload.RetentionHours)*time.Hour)
		if err != nil {
			return err
		}
		logger.Info("contact cleanup run", slog.Int64("purged", purged))
		return nil
	}
}

// NewBlogDraftHandler generates a draft post and stores it unpublished.
func NewBlogDraftHandler(logger *slog.Logger, aiSvc *ai.Service, blogSvc *blog.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload BlogDraftPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		text, err := aiSvc.GenerateBlogDraft(ctx, ai.BlogDraftRequest{Topic: payload.Topic, Tone: payload.Tone})
		if err != nil {
			return err
		}
		post, err := blogSvc.CreatePost(ctx, payload.AuthorID, blog.CreatePostRequest{
			Title: payload.Topic,
			Body:  text,
		})
		if err != nil {
			return err
		}
		logger.Info("blog draft generated", slog.Int64("post_id", post.ID), slog.String("topic", payload.Topic))
		return nil
	}
}

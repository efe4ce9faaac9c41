package ai

import (
	"context"
	"strings"

	"github.com/ridgeline-builders/ridgeline/internal/contacts"
)

// Token budgets per operation.
const (
	blogDraftMaxTokens   = 2000
	descriptionMaxTokens = 1000
	summaryMaxTokens     = 500
)

// ContactSource fetches the inquiry behind a summary request. Satisfied by
// the contacts service.
type ContactSource interface {
	GetContact(ctx context.Context, id int64) (*contacts.Contact, error)
}

// Service implements the AI-assisted drafting operations.
type Service struct {
	generator Generator
	contacts  ContactSource
}

// NewService constructs a Service.
func NewService(generator Generator, contactSource ContactSource) *Service {
	return &Service{generator: generator, contacts: contactSource}
}

// GenerateBlogDraft produces a Markdown blog post draft for the topic.
func (s *Service) GenerateBlogDraft(ctx context.Context, req BlogDraftRequest) (string, error) {
	text, err := s.generator.Complete(ctx, blogDraftPrompt(req.Topic, req.Tone), blogDraftMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// PolishProjectDescription turns rough notes into portfolio copy.
func (s *Service) PolishProjectDescription(ctx context.Context, req ProjectDescriptionRequest) (string, error) {
	text, err := s.generator.Complete(ctx, projectDescriptionPrompt(req.Title, req.Notes), descriptionMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// SummarizeContact fetches the inquiry and produces a short summary for the
// project manager.
func (s *Service) SummarizeContact(ctx context.Context, req ContactSummaryRequest) (string, error) {
	contact, err := s.contacts.GetContact(ctx, req.ContactID)
	if err != nil {
		return "", err
	}
	subject := ""
	if contact.Subject != nil {
		subject = *contact.Subject
	}
	text, err := s.generator.Complete(ctx, contactSummaryPrompt(contact.Name, subject, contact.Message), summaryMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridgeline-builders/ridgeline/internal/contacts"
	"github.com/ridgeline-builders/ridgeline/internal/shared"
	_ "github.com/ridgeline-builders/ridgeline/testing"
)

type stubGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (s *stubGenerator) Complete(_ context.Context, prompt string, _ int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubContacts struct {
	contact *contacts.Contact
}

func (s *stubContacts) GetContact(_ context.Context, id int64) (*contacts.Contact, error) {
	if s.contact == nil || s.contact.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.contact, nil
}

func TestGenerateBlogDraft(t *testing.T) {
	gen := &stubGenerator{reply: "# Five Signs Your Deck Needs Replacing\n\n..."}
	svc := NewService(gen, &stubContacts{})

	text, err := svc.GenerateBlogDraft(context.Background(), BlogDraftRequest{Topic: "deck replacement"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(text, "#"))
	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], "deck replacement")
	require.Contains(t, gen.prompts[0], "friendly and practical")
}

func TestPolishProjectDescription(t *testing.T) {
	gen := &stubGenerator{reply: "  A complete transformation of the space.  "}
	svc := NewService(gen, &stubContacts{})

	text, err := svc.PolishProjectDescription(context.Background(), ProjectDescriptionRequest{
		Title: "Hillside Kitchen Remodel",
		Notes: "gutted kitchen, new cabinets, quartz counters",
	})
	require.NoError(t, err)
	require.Equal(t, "A complete transformation of the space.", text)
	require.Contains(t, gen.prompts[0], "Hillside Kitchen Remodel")
}

func TestSummarizeContact(t *testing.T) {
	subject := "Garage addition"
	source := &stubContacts{contact: &contacts.Contact{
		ID:      42,
		Name:    "Pat Garner",
		Subject: &subject,
		Message: "We want to add a two-car garage this fall, budget around 60k.",
	}}
	gen := &stubGenerator{reply: "Homeowner requesting a two-car garage addition; budget ~$60k."}
	svc := NewService(gen, source)

	text, err := svc.SummarizeContact(context.Background(), ContactSummaryRequest{ContactID: 42})
	require.NoError(t, err)
	require.Contains(t, text, "garage")
	require.Contains(t, gen.prompts[0], "Pat Garner")
	require.Contains(t, gen.prompts[0], "Garage addition")
}

func TestSummarizeContactMissing(t *testing.T) {
	svc := NewService(&stubGenerator{}, &stubContacts{})

	_, err := svc.SummarizeContact(context.Background(), ContactSummaryRequest{ContactID: 7})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGeneratorErrorPropagates(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model overloaded")}
	svc := NewService(gen, &stubContacts{})

	_, err := svc.GenerateBlogDraft(context.Background(), BlogDraftRequest{Topic: "anything"})
	require.Error(t, err)
}

package ai_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ridgeline-builders/ridgeline/internal/ai"
	"github.com/ridgeline-builders/ridgeline/internal/contacts"
	"github.com/ridgeline-builders/ridgeline/internal/ratelimit"
	"github.com/ridgeline-builders/ridgeline/internal/rbac"
	"github.com/ridgeline-builders/ridgeline/internal/shared"
	_ "github.com/ridgeline-builders/ridgeline/testing"
)

type fixedGenerator struct{}

func (fixedGenerator) Complete(context.Context, string, int) (string, error) {
	return "generated text", nil
}

type emptyContacts struct{}

func (emptyContacts) GetContact(context.Context, int64) (*contacts.Contact, error) {
	return nil, shared.ErrNotFound
}

type profileMap map[int64]*rbac.AuthUser

func (p profileMap) FindProfile(_ context.Context, id int64) (*rbac.AuthUser, error) {
	user, ok := p[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func sessionFor(userID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &shared.Session{}
			sess.SetUser(strconv.FormatInt(userID, 10))
			next.ServeHTTP(w, r.WithContext(shared.ContextWithSession(r.Context(), sess)))
		})
	}
}

func newAIRouter(t *testing.T, userID int64) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	profiles := profileMap{
		1: {ID: 1, Email: "staff@ridgelinebuilders.com", Role: rbac.RoleStaff},
		2: {ID: 2, Email: "second@ridgelinebuilders.com", Role: rbac.RoleStaff},
		3: {ID: 3, Email: "partner@example.com", Role: rbac.RolePartner},
	}
	guard := rbac.NewGuard(rbac.NewResolver(profiles, logger))
	handler := ai.NewHandler(logger,
		ai.NewService(fixedGenerator{}, emptyContacts{}),
		rbac.Middleware{Guard: guard, Logger: logger},
		ratelimit.New())

	router := chi.NewRouter()
	router.Use(sessionFor(userID))
	router.Route("/ai", handler.MountRoutes)
	return router
}

func draftBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]string{"topic": "deck replacement"})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestBlogDraftRequiresAIPermission(t *testing.T) {
	router := newAIRouter(t, 3) // partner has no ai:use

	req := httptest.NewRequest(http.MethodPost, "/ai/blog-draft", draftBody(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBlogDraftPerUserBudget(t *testing.T) {
	router := newAIRouter(t, 1)

	for i := 0; i < ratelimit.AIGenerate.Limit; i++ {
		req := httptest.NewRequest(http.MethodPost, "/ai/blog-draft", draftBody(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/ai/blog-draft", draftBody(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestContactSummaryBudgetIsSeparate(t *testing.T) {
	router := newAIRouter(t, 1)

	// Exhaust the generation budget first.
	for i := 0; i < ratelimit.AIGenerate.Limit; i++ {
		req := httptest.NewRequest(http.MethodPost, "/ai/blog-draft", draftBody(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Analysis has its own budget; a missing contact is a 404, not a 429.
	body, err := json.Marshal(map[string]int{"contact_id": 9})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/ai/contact-summary", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

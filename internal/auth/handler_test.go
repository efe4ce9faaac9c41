package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ridgeline-builders/ridgeline/internal/auth"
	"github.com/ridgeline-builders/ridgeline/internal/rbac"
	"github.com/ridgeline-builders/ridgeline/internal/shared"
	_ "github.com/ridgeline-builders/ridgeline/testing"
)

type stubRepo struct {
	users    map[string]*auth.User
	sessions map[string]int64
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (s *stubRepo) CreateSession(_ context.Context, id string, userID int64, _ time.Time, _, _ string) error {
	s.sessions[id] = userID
	return nil
}

func (s *stubRepo) DeleteSession(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubProfiles struct {
	byID map[int64]*rbac.AuthUser
}

func (s *stubProfiles) FindProfile(_ context.Context, id int64) (*rbac.AuthUser, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

type commitWriter struct {
	http.ResponseWriter
	ctx       context.Context
	sessions  *shared.SessionManager
	sess      *shared.Session
	committed bool
}

func (cw *commitWriter) WriteHeader(code int) {
	if !cw.committed {
		cw.committed = true
		_ = cw.sessions.Commit(cw.ctx, cw.ResponseWriter, cw.sess)
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *commitWriter) Write(b []byte) (int, error) {
	if !cw.committed {
		cw.WriteHeader(http.StatusOK)
	}
	return cw.ResponseWriter.Write(b)
}

func sessionMiddleware(sessions *shared.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Load(r.Context(), r)
			if err != nil {
				http.Error(w, "session load failed", http.StatusInternalServerError)
				return
			}
			ctx := shared.ContextWithSession(r.Context(), sess)
			next.ServeHTTP(&commitWriter{ResponseWriter: w, ctx: ctx, sessions: sessions, sess: sess}, r.WithContext(ctx))
		})
	}
}

func newTestRouter(t *testing.T) (*chi.Mux, *stubRepo) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubRepo{
		users: map[string]*auth.User{
			"owner@ridgelinebuilders.com": {
				ID:           1,
				Email:        "owner@ridgelinebuilders.com",
				Name:         "Dana Whitfield",
				Role:         rbac.RoleAdmin,
				PasswordHash: string(hash),
				IsActive:     true,
			},
			"former@ridgelinebuilders.com": {
				ID:           2,
				Email:        "former@ridgelinebuilders.com",
				Name:         "Former Employee",
				Role:         rbac.RoleStaff,
				PasswordHash: string(hash),
				IsActive:     false,
			},
		},
		sessions: make(map[string]int64),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := shared.NewSessionManager(client, "ridgeline_session", time.Hour, false)
	csrf := shared.NewCSRFManager("test-csrf-secret")
	resolver := rbac.NewResolver(&stubProfiles{byID: map[int64]*rbac.AuthUser{
		1: {ID: 1, Email: "owner@ridgelinebuilders.com", Name: "Dana Whitfield", Role: rbac.RoleAdmin},
	}}, logger)

	handler := auth.NewHandler(logger, auth.NewService(repo), sessions, csrf, resolver)

	r := chi.NewRouter()
	r.Use(sessionMiddleware(sessions))
	r.Route("/auth", handler.MountRoutes)
	return r, repo
}

func loginBody(t *testing.T, email, password string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestLoginSuccess(t *testing.T) {
	router, repo := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody(t, "owner@ridgelinebuilders.com", "correct horse battery"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp auth.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.ID)
	require.Equal(t, rbac.RoleAdmin, resp.Role)
	require.NotEmpty(t, resp.CSRFToken)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, "ridgeline_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	require.Len(t, repo.sessions, 1)
	for _, userID := range repo.sessions {
		require.Equal(t, int64(1), userID)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := map[string]struct {
		email    string
		password string
	}{
		"wrong password": {"owner@ridgelinebuilders.com", "nope"},
		"unknown email":  {"ghost@ridgelinebuilders.com", "correct horse battery"},
		"inactive user":  {"former@ridgelinebuilders.com", "correct horse battery"},
	}

	bodies := make(map[string]string)
	for name, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody(t, tc.email, tc.password))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
		bodies[name] = rec.Body.String()
	}

	require.Equal(t, bodies["wrong password"], bodies["unknown email"])
	require.Equal(t, bodies["wrong password"], bodies["inactive user"])
}

func TestLoginRejectsMalformedPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"email": "not-an-email"`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/login", loginBody(t, "not-an-email", "pw"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionRequiresLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginSessionLogoutFlow(t *testing.T) {
	router, repo := newTestRouter(t)

	loginReq := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody(t, "owner@ridgelinebuilders.com", "correct horse battery"))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)

	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)
	cookie := cookies[0]

	sessReq := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	sessReq.AddCookie(cookie)
	sessRec := httptest.NewRecorder()
	router.ServeHTTP(sessRec, sessReq)
	require.Equal(t, http.StatusOK, sessRec.Code)

	var resp auth.SessionResponse
	require.NoError(t, json.Unmarshal(sessRec.Body.Bytes(), &resp))
	require.Equal(t, "owner@ridgelinebuilders.com", resp.Email)
	require.NotEmpty(t, resp.CSRFToken)

	logoutReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	logoutReq.AddCookie(cookie)
	logoutRec := httptest.NewRecorder()
	router.ServeHTTP(logoutRec, logoutReq)
	require.Equal(t, http.StatusNoContent, logoutRec.Code)
	require.Empty(t, repo.sessions)

	afterReq := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	afterReq.AddCookie(cookie)
	afterRec := httptest.NewRecorder()
	router.ServeHTTP(afterRec, afterReq)
	require.Equal(t, http.StatusUnauthorized, afterRec.Code)
}

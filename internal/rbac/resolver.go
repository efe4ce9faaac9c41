package rbac

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// AuthUser is the resolved identity of the caller for one request. It is
// constructed fresh per request and never cached.
type AuthUser struct {
	ID      int64
	Email   string
	Name    string
	Role    Role
	Company string
}

// ProfileStore looks up the profile row backing a session user. Implemented
// by the users repository. A missing row is reported as shared.ErrNotFound.
type ProfileStore interface {
	FindProfile(ctx context.Context, id int64) (*AuthUser, error)
}

// Resolver turns the request's ambient session into an AuthUser.
type Resolver struct {
	profiles ProfileStore
	logger   *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(profiles ProfileStore, logger *slog.Logger) *Resolver {
	return &Resolver{profiles: profiles, logger: logger}
}

// Resolve returns the authenticated user for ctx. Expected failures come
// back as *AuthError; infrastructure failures are logged and reported as a
// generic authentication error so callers never see driver errors.
func (r *Resolver) Resolve(ctx context.Context) (*AuthUser, error) {
	sess := shared.SessionFromContext(ctx)
	if sess == nil {
		return nil, ErrAuthenticationRequired
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return nil, ErrAuthenticationRequired
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("session user id not numeric", slog.String("value", raw))
		}
		return nil, ErrAuthenticationRequired
	}

	user, err := r.profiles.FindProfile(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		if r.logger != nil {
			r.logger.Error("resolve profile", slog.Int64("user_id", id), slog.Any("error", err))
		}
		return nil, errAuthentication
	}
	return user, nil
}

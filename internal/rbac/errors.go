package rbac

import "errors"

// Kind classifies authorization failures so handlers can map them to HTTP
// statuses without inspecting message text.
type Kind int

const (
	// KindUnauthenticated means no valid session was presented.
	KindUnauthenticated Kind = iota
	// KindProfileMissing means the session is valid but no profile row exists.
	KindProfileMissing
	// KindForbidden means the role lacks the required permission.
	KindForbidden
)

// AuthError is the typed failure returned by the resolver and guard.
type AuthError struct {
	Kind    Kind
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var (
	// ErrAuthenticationRequired is returned when no session user is present.
	ErrAuthenticationRequired = &AuthError{Kind: KindUnauthenticated, Message: "authentication required"}
	// ErrProfileNotFound is returned when the session user has no profile row.
	ErrProfileNotFound = &AuthError{Kind: KindProfileMissing, Message: "user profile not found"}
	// ErrInsufficientPermission is returned when the role fails the permission check.
	ErrInsufficientPermission = &AuthError{Kind: KindForbidden, Message: "insufficient permission to perform this operation"}
	// errAuthentication covers unexpected infrastructure failures during
	// resolution; the underlying cause goes to the log, not the caller.
	errAuthentication = &AuthError{Kind: KindUnauthenticated, Message: "authentication error"}
)

// KindOf extracts the failure kind from err. The second return is false for
// errors that did not originate in this package.
func KindOf(err error) (Kind, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

package library

import "errors"

// Guard outcomes. The CLI maps ErrNotLoggedIn to the login prompt and
// ErrNotAuthorized to the access-denied message, mirroring the redirects a
// routed client would perform.
var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrNotAuthorized = errors.New("not authorized for this action")
)

// RequireAuth admits any authenticated session.
func RequireAuth(store *SessionStore) (*Session, error) {
	sess := store.Current()
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}

// RequireRole admits a session whose role is in the allow-list. A missing
// session outranks a wrong role: callers are sent to log in before being
// told they are not allowed.
func RequireRole(store *SessionStore, allowed ...Role) (*Session, error) {
	sess := store.Current()
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	for _, role := range allowed {
		if sess.Role == role {
			return sess, nil
		}
	}
	return nil, ErrNotAuthorized
}

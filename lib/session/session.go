// Package session provides small per-session key/value storage.
//
// A session is identified by an opaque id, typically carried by a browser
// cookie (see ID). The Manager interface abstracts the backing store: use
// NewMemory for single process deployments, NewRedis where sessions must
// survive restarts or be shared across processes.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session identifier.
const CookieName = "slim_session"

// Manager stores string values per session id and key.
//
// Get returns the empty string, with no error, when the key is not set.
// A ttl of zero means the value does not expire.
type Manager interface {
	Get(ctx context.Context, id, key string) (string, error)
	Set(ctx context.Context, id, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, id, key string) error
}

// ID returns the session id for a request, minting one if necessary.
//
// When the request does not carry a session cookie, a new id is generated
// and set on the response, so the rest of the request can use it and the
// browser presents it on subsequent requests.
func ID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

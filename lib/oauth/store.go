package oauth

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sduck/slim-oauth/lib/khttp/kcookie"
	"github.com/sduck/slim-oauth/lib/session"
)

// Keys used in the ReturnStore across the initiate/callback round trip.
const (
	// ReturnURLKey holds the URL the user is sent to after login.
	ReturnURLKey = "oauth_return_url"
	// StateKey holds the random state bound to the login request.
	StateKey = "oauth_state"
)

// returnTTL bounds how long an interrupted login round trip stays around.
const returnTTL = 10 * time.Minute

// ReturnStore persists small string values across the initiate/callback
// redirect round trip.
//
// Retrieve consumes the value: a second Retrieve for the same key returns
// the empty string. A missing value is not an error.
type ReturnStore interface {
	Store(w http.ResponseWriter, r *http.Request, key, value string) error
	Retrieve(w http.ResponseWriter, r *http.Request, key string) (string, error)
}

// NewReturnStore builds the store selected by a storage backend value.
//
// The session backend uses the supplied manager, or an in process one when
// manager is nil. The cookie backend needs no server side state at all.
func NewReturnStore(backend StorageBackend, manager session.Manager) (ReturnStore, error) {
	switch backend {
	case StorageCookie:
		return &CookieStore{}, nil
	case StorageSession, "":
		if manager == nil {
			manager = session.NewMemory()
		}
		return &SessionStore{Manager: manager}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

// CookieStore keeps values in short lived browser cookies named after the
// store key.
type CookieStore struct {
	// Modifiers are applied to every cookie set by the store, after the
	// defaults (path /, 10 minute expiry, http only).
	Modifiers kcookie.Modifiers
}

var _ ReturnStore = (*CookieStore)(nil)

func (cs *CookieStore) Store(w http.ResponseWriter, r *http.Request, key, value string) error {
	// Values are query escaped to stay within the cookie value charset.
	http.SetCookie(w, cs.Modifiers.Apply(&http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		Expires:  time.Now().Add(returnTTL),
		HttpOnly: true,
	}))
	return nil
}

func (cs *CookieStore) Retrieve(w http.ResponseWriter, r *http.Request, key string) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil || cookie.Value == "" {
		return "", nil
	}

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", fmt.Errorf("malformed %s cookie - %w", key, err)
	}

	// Consume the cookie: the round trip is over.
	http.SetCookie(w, &http.Cookie{Name: key, Path: "/", MaxAge: -1})
	return value, nil
}

// SessionStore keeps values in a server side session, identified by the
// session cookie managed by the session package.
type SessionStore struct {
	Manager session.Manager
}

var _ ReturnStore = (*SessionStore)(nil)

func (ss *SessionStore) Store(w http.ResponseWriter, r *http.Request, key, value string) error {
	id := session.ID(w, r)
	return ss.Manager.Set(r.Context(), id, key, value, returnTTL)
}

func (ss *SessionStore) Retrieve(w http.ResponseWriter, r *http.Request, key string) (string, error) {
	id := session.ID(w, r)
	value, err := ss.Manager.Get(r.Context(), id, key)
	if err != nil || value == "" {
		return "", err
	}

	if err := ss.Manager.Delete(r.Context(), id, key); err != nil {
		return "", err
	}
	return value, nil
}

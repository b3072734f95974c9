package oauth

import (
	"net/http/httptest"
	"testing"

	"github.com/sduck/slim-oauth/lib/session"
	"github.com/stretchr/testify/assert"
)

// roundTrip stores a value in one request and retrieves it from a second
// request carrying the cookies the first one set.
func roundTrip(t *testing.T, store ReturnStore, key, value string) string {
	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest("GET", "http://app.example/auth/github", nil)
	assert.NoError(t, store.Store(w1, r1, key, value))

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest("GET", "http://app.example/auth/github/callback", nil)
	for _, cookie := range w1.Result().Cookies() {
		r2.AddCookie(cookie)
	}

	retrieved, err := store.Retrieve(w2, r2, key)
	assert.NoError(t, err)
	return retrieved
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := &CookieStore{}

	url := "https://app.example/done?page=2&tab=first"
	assert.Equal(t, url, roundTrip(t, store, ReturnURLKey, url))
}

func TestCookieStoreAttributes(t *testing.T) {
	store := &CookieStore{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://app.example/auth/github", nil)
	assert.NoError(t, store.Store(w, r, ReturnURLKey, "https://app.example/done"))

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, ReturnURLKey, cookies[0].Name)
	assert.Equal(t, "/", cookies[0].Path)
	assert.False(t, cookies[0].Expires.IsZero(), "return cookie must carry an expiry")
}

func TestCookieStoreMissing(t *testing.T) {
	store := &CookieStore{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://app.example/auth/github/callback", nil)
	value, err := store.Retrieve(w, r, ReturnURLKey)
	assert.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := &SessionStore{Manager: session.NewMemory()}

	url := "https://app.example/done"
	assert.Equal(t, url, roundTrip(t, store, ReturnURLKey, url))
}

func TestSessionStoreConsumesValue(t *testing.T) {
	store := &SessionStore{Manager: session.NewMemory()}

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest("GET", "http://app.example/auth/github", nil)
	assert.NoError(t, store.Store(w1, r1, StateKey, "s3cret"))

	r2 := httptest.NewRequest("GET", "http://app.example/auth/github/callback", nil)
	for _, cookie := range w1.Result().Cookies() {
		r2.AddCookie(cookie)
	}

	value, err := store.Retrieve(httptest.NewRecorder(), r2, StateKey)
	assert.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	value, err = store.Retrieve(httptest.NewRecorder(), r2, StateKey)
	assert.NoError(t, err)
	assert.Equal(t, "", value, "a retrieved value must not be retrievable twice")
}

func TestNewReturnStore(t *testing.T) {
	store, err := NewReturnStore(StorageCookie, nil)
	assert.NoError(t, err)
	assert.IsType(t, &CookieStore{}, store)

	store, err = NewReturnStore(StorageSession, nil)
	assert.NoError(t, err)
	assert.IsType(t, &SessionStore{}, store)

	store, err = NewReturnStore("", nil)
	assert.NoError(t, err)
	assert.IsType(t, &SessionStore{}, store, "empty backend defaults to session")

	_, err = NewReturnStore("filesystem", nil)
	assert.Error(t, err, "unknown backends must be rejected, not defaulted")
}

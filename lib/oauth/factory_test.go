package oauth

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sduck/slim-oauth/lib/logger"
	"github.com/stretchr/testify/assert"
)

func testConfig() *Config {
	return &Config{
		Providers: map[string]ProviderConfig{
			"github": {
				Key:      "client-id",
				Secret:   "client-secret",
				Scopes:   []string{"user:email"},
				AuthURL:  "https://idp.example/authorize",
				TokenURL: "https://idp.example/token",
			},
		},
	}
}

func TestFactoryUnknownProvider(t *testing.T) {
	factory := NewFactory(testConfig(), logger.Nil)

	r := httptest.NewRequest("GET", "http://app.example/auth/gitlab", nil)
	_, err := factory.Client(r, "gitlab")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProviderConfig), "missing config must surface the sentinel, got %v", err)
}

func TestFactoryCaseInsensitive(t *testing.T) {
	factory := NewFactory(testConfig(), logger.Nil)

	r := httptest.NewRequest("GET", "http://app.example/auth/GitHub", nil)
	client, err := factory.Client(r, "GitHub")
	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestFactoryCachesPerProvider(t *testing.T) {
	config := testConfig()
	config.Providers["google"] = ProviderConfig{
		Key: "gid", Secret: "gsecret",
		AuthURL: "https://accounts.example/auth", TokenURL: "https://accounts.example/token",
	}
	factory := NewFactory(config, logger.Nil)

	r := httptest.NewRequest("GET", "http://app.example/auth/github", nil)
	github1, err := factory.Client(r, "github")
	assert.NoError(t, err)
	github2, err := factory.Client(r, "github")
	assert.NoError(t, err)
	assert.Same(t, github1, github2, "repeated requests for a provider reuse the client")

	google, err := factory.Client(r, "google")
	assert.NoError(t, err)
	assert.NotSame(t, github1, google, "each provider gets its own client")
}

func TestFactoryAuthorizationURL(t *testing.T) {
	factory := NewFactory(testConfig(), logger.Nil)

	r := httptest.NewRequest("GET", "http://app.example/auth/github?return=https%3A%2F%2Fapp.example%2Fdone", nil)
	client, err := factory.Client(r, "github")
	assert.NoError(t, err)

	authURL, err := url.Parse(client.AuthorizationURL("state-123"))
	assert.NoError(t, err)
	assert.Equal(t, "idp.example", authURL.Host)
	assert.Equal(t, "/authorize", authURL.Path)

	query := authURL.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "state-123", query.Get("state"))
	assert.Equal(t, "http://app.example/auth/github/callback", query.Get("redirect_uri"))
}

func TestFactoryUnknownEndpoints(t *testing.T) {
	config := &Config{Providers: map[string]ProviderConfig{
		"custom": {Key: "id", Secret: "secret"},
	}}
	factory := NewFactory(config, logger.Nil)

	r := httptest.NewRequest("GET", "http://app.example/auth/custom", nil)
	_, err := factory.Client(r, "custom")
	assert.Error(t, err, "providers without built in endpoints need auth_url and token_url")
}

func TestCallbackURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"http://app.example/auth/github?return=https://app.example/done", "http://app.example/auth/github/callback"},
		{"http://app.example/auth/github/callback?code=abc", "http://app.example/auth/github/callback"},
		{"https://app.example/auth/google", "https://app.example/auth/google/callback"},
	}

	for _, test := range tests {
		t.Run(test.url, func(t *testing.T) {
			r := httptest.NewRequest("GET", test.url, nil)
			assert.Equal(t, test.expected, CallbackURL(r))
		})
	}
}

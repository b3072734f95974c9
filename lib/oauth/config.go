package oauth

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// StorageBackend selects where the return URL lives across the redirect
// round trip. Unknown values are rejected when the configuration is
// validated, not silently mapped to a default.
type StorageBackend string

const (
	// StorageSession keeps the return URL in a server side session.
	StorageSession StorageBackend = "session"
	// StorageCookie keeps it in a short lived browser cookie.
	StorageCookie StorageBackend = "cookie"
)

// ProviderConfig holds the credentials for one identity provider.
type ProviderConfig struct {
	// Key and Secret are the oauth client id and client secret issued by
	// the provider for this application.
	Key    string   `yaml:"key"`
	Secret string   `yaml:"secret"`
	Scopes []string `yaml:"scopes,omitempty"`

	// AuthURL and TokenURL override the provider endpoints. Required for
	// providers the library has no built in endpoints for.
	AuthURL  string `yaml:"auth_url,omitempty"`
	TokenURL string `yaml:"token_url,omitempty"`
}

// Config is the static configuration of the middleware.
type Config struct {
	// Providers maps provider type (eg, "github") to its credentials.
	// Lookup is case insensitive. A provider must appear here to pass
	// the allow-list check.
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Storage selects the return URL backend. Empty means session.
	Storage StorageBackend `yaml:"storage,omitempty"`

	// TokenCookie, when set, names a cookie the access token is delivered
	// in after a completed callback (1 hour expiry, path /).
	TokenCookie string `yaml:"token_cookie,omitempty"`

	// TokenURLParam, when set, names a query parameter appended to the
	// return URL carrying the access token. At most one of TokenCookie
	// and TokenURLParam may be configured.
	TokenURLParam string `yaml:"token_urlparam,omitempty"`
}

// Validate checks the configuration and normalizes provider keys.
func (c *Config) Validate() error {
	switch c.Storage {
	case "", StorageSession, StorageCookie:
	default:
		return fmt.Errorf("unknown storage backend %q - must be %q or %q", c.Storage, StorageSession, StorageCookie)
	}

	if c.TokenCookie != "" && c.TokenURLParam != "" {
		return fmt.Errorf("token_cookie and token_urlparam are mutually exclusive - configure at most one")
	}

	providers := make(map[string]ProviderConfig, len(c.Providers))
	for name, provider := range c.Providers {
		providers[strings.ToLower(name)] = provider
	}
	c.Providers = providers
	return nil
}

// Provider looks up the configuration for a provider type, case
// insensitively.
func (c *Config) Provider(providerType string) (ProviderConfig, bool) {
	provider, ok := c.Providers[strings.ToLower(providerType)]
	return provider, ok
}

// Allowed returns true if the provider type is in the allow-list.
//
// The allow-list is the set of configured providers: a provider nobody
// supplied credentials for cannot start a login flow.
func (c *Config) Allowed(providerType string) bool {
	_, ok := c.Provider(providerType)
	return ok
}

// LoadConfig reads and validates a yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %s - %w", path, err)
	}

	var config Config
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse config %s - %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s - %w", path, err)
	}
	return &config, nil
}

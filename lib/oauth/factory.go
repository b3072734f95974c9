package oauth

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/sduck/slim-oauth/lib/khttp"
	"github.com/sduck/slim-oauth/lib/logger"
	"golang.org/x/oauth2"
)

// ClientFactory produces configured oauth clients per provider type.
//
// The request is needed to derive the callback URL the provider redirects
// back to.
type ClientFactory interface {
	Client(r *http.Request, providerType string) (Client, error)
}

// Factory is the default ClientFactory, building clients from the static
// configuration and caching them per provider type.
//
// The cache is a map guarded by a mutex, so interleaved logins against
// different providers each get the client for their own provider. The
// first request for a provider pins its callback URL; deployments serving
// multiple external hostnames should front this with their canonical host.
type Factory struct {
	config *Config
	log    logger.Logger

	mu      sync.Mutex
	clients map[string]Client

	// scopes are extra scopes requested on top of the configured ones,
	// typically contributed by verifiers.
	scopes []string
}

var _ ClientFactory = (*Factory)(nil)

// NewFactory returns a Factory for the given configuration.
func NewFactory(config *Config, log logger.Logger, extraScopes ...string) *Factory {
	return &Factory{
		config:  config,
		log:     log,
		clients: map[string]Client{},
		scopes:  extraScopes,
	}
}

// Client returns the cached client for a provider type, creating and
// caching one on first use.
func (f *Factory) Client(r *http.Request, providerType string) (Client, error) {
	providerType = strings.ToLower(providerType)

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[providerType]; ok {
		return client, nil
	}

	client, err := f.create(r, providerType)
	if err != nil {
		return nil, err
	}
	f.clients[providerType] = client
	f.log.Debugf("created oauth client for provider %q", providerType)
	return client, nil
}

func (f *Factory) create(r *http.Request, providerType string) (Client, error) {
	provider, ok := f.config.Provider(providerType)
	if !ok {
		return nil, fmt.Errorf("%w - %q", ErrUnknownProviderConfig, providerType)
	}

	endpoint, err := endpointFor(providerType, provider)
	if err != nil {
		return nil, err
	}

	return &oauth2Client{conf: &oauth2.Config{
		ClientID:     provider.Key,
		ClientSecret: provider.Secret,
		Scopes:       append(append([]string{}, provider.Scopes...), f.scopes...),
		Endpoint:     endpoint,
		RedirectURL:  CallbackURL(r),
	}}, nil
}

// CallbackURL derives the provider redirect target from the current
// request: the request URL with the query stripped and "/callback"
// appended, unless the path already is a callback path.
func CallbackURL(r *http.Request) string {
	u := khttp.RequestURL(r)
	u.RawQuery = ""
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/callback") {
		u.Path += "/callback"
	}
	return u.String()
}

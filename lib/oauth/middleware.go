package oauth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sduck/slim-oauth/lib/khttp"
	"github.com/sduck/slim-oauth/lib/logger"
	"github.com/sduck/slim-oauth/lib/session"
	"github.com/sduck/slim-oauth/lib/srand"
)

// tokenCookieTTL is the lifetime of the token delivery cookie.
const tokenCookieTTL = time.Hour

// ErrorHandler is invoked when a request cannot be completed: unknown
// provider, invalid return URL, failed token exchange. It owns the
// response from that point on.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler logs the failure and replies with a bare status
// derived from the error.
func DefaultErrorHandler(log logger.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrUnknownProviderType), errors.Is(err, ErrUnknownProviderConfig):
			status = http.StatusNotFound
		case errors.Is(err, ErrInvalidReturnURL), errors.Is(err, ErrStateMismatch):
			status = http.StatusBadRequest
		}

		log.Errorf("auth failed for %s %s from %s - %s", r.Method, r.URL.Path, khttp.ClientOrigin(r), err)
		http.Error(w, http.StatusText(status), status)
	}
}

// Middleware intercepts auth routes and attaches users to everything else.
//
// A Middleware keeps no per request state: all cross request state lives
// in the injected configuration, factory and return store, so a single
// instance serves concurrent requests.
type Middleware struct {
	config  *Config
	factory ClientFactory
	store   ReturnStore
	users   UserSource

	verifiers []Verifier
	log       logger.Logger
	onError   ErrorHandler

	rngMu sync.Mutex
	rng   *rand.Rand
}

type options struct {
	config    *Config
	factory   ClientFactory
	store     ReturnStore
	sessions  session.Manager
	verifiers []Verifier
	log       logger.Logger
	onError   ErrorHandler
	rng       *rand.Rand
}

// Modifier applies a configuration change when creating a Middleware.
type Modifier func(*options) error

// WithConfig supplies the static configuration. The config is validated.
func WithConfig(config *Config) Modifier {
	return func(o *options) error {
		if err := config.Validate(); err != nil {
			return err
		}
		o.config = config
		return nil
	}
}

// WithFactory overrides the default client factory.
func WithFactory(factory ClientFactory) Modifier {
	return func(o *options) error {
		o.factory = factory
		return nil
	}
}

// WithStore overrides the return URL store selected by the config.
func WithStore(store ReturnStore) Modifier {
	return func(o *options) error {
		o.store = store
		return nil
	}
}

// WithSessions supplies the session manager backing the session storage
// backend. Ignored when the cookie backend is configured.
func WithSessions(manager session.Manager) Modifier {
	return func(o *options) error {
		o.sessions = manager
		return nil
	}
}

// WithVerifiers adds identity verifiers run after every token exchange.
func WithVerifiers(verifiers ...Verifier) Modifier {
	return func(o *options) error {
		o.verifiers = append(o.verifiers, verifiers...)
		return nil
	}
}

func WithLogger(log logger.Logger) Modifier {
	return func(o *options) error {
		o.log = log
		return nil
	}
}

// WithErrorHandler overrides how fatal per request failures are reported.
func WithErrorHandler(handler ErrorHandler) Modifier {
	return func(o *options) error {
		o.onError = handler
		return nil
	}
}

// WithRng overrides the random source used for state secrets. Mostly
// useful in tests.
func WithRng(rng *rand.Rand) Modifier {
	return func(o *options) error {
		o.rng = rng
		return nil
	}
}

// New creates a Middleware resolving users through the supplied source.
func New(users UserSource, mods ...Modifier) (*Middleware, error) {
	if users == nil {
		return nil, fmt.Errorf("a UserSource is required")
	}

	o := &options{log: logger.Nil}
	for _, m := range mods {
		if err := m(o); err != nil {
			return nil, err
		}
	}

	if o.config == nil {
		o.config = &Config{}
	}
	if o.rng == nil {
		o.rng = rand.New(srand.New())
	}

	var scopes []string
	for _, v := range o.verifiers {
		scopes = append(scopes, v.Scopes()...)
	}
	if o.factory == nil {
		o.factory = NewFactory(o.config, o.log, scopes...)
	}
	if o.store == nil {
		store, err := NewReturnStore(o.config.Storage, o.sessions)
		if err != nil {
			return nil, err
		}
		o.store = store
	}
	if o.onError == nil {
		o.onError = DefaultErrorHandler(o.log)
	}

	return &Middleware{
		config:    o.config,
		factory:   o.factory,
		store:     o.store,
		users:     users,
		verifiers: o.verifiers,
		log:       o.log,
		onError:   o.onError,
		rng:       o.rng,
	}, nil
}

// Handler wraps the application handler with the interception layer.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, providerType := MatchRoute(r.URL.Path)

		var err error
		switch route {
		case RouteInitiate:
			err = m.initiate(w, r, providerType)
		case RouteCallback:
			err = m.callback(w, r, providerType)
		default:
			err = m.forward(w, r, next)
		}
		if err != nil {
			m.onError(w, r, err)
		}
	})
}

func (m *Middleware) allowed(providerType string) error {
	if !m.config.Allowed(providerType) {
		return fmt.Errorf("%w - %q", ErrUnknownProviderType, providerType)
	}
	return nil
}

// newState mints the random state bound to one login round trip.
func (m *Middleware) newState() string {
	secret := make([]byte, 16)

	m.rngMu.Lock()
	m.rng.Read(secret)
	m.rngMu.Unlock()

	return hex.EncodeToString(secret)
}

// initiate starts the login flow: validate, remember where to come back
// to, and redirect the user to the identity provider.
func (m *Middleware) initiate(w http.ResponseWriter, r *http.Request, providerType string) error {
	if err := m.allowed(providerType); err != nil {
		return err
	}

	target := r.URL.Query().Get("return")
	parsed, err := url.Parse(target)
	if target == "" || err != nil || !parsed.IsAbs() {
		return fmt.Errorf("%w - %q", ErrInvalidReturnURL, target)
	}

	state := m.newState()
	if err := m.store.Store(w, r, ReturnURLKey, target); err != nil {
		return fmt.Errorf("could not store return URL - %w", err)
	}
	if err := m.store.Store(w, r, StateKey, state); err != nil {
		return fmt.Errorf("could not store login state - %w", err)
	}

	client, err := m.factory.Client(r, providerType)
	if err != nil {
		return err
	}

	http.Redirect(w, r, client.AuthorizationURL(state), http.StatusFound)
	return nil
}

// callback completes the login flow: exchange the code for a token,
// resolve the user, and send the user back where they came from with the
// token delivered as configured.
func (m *Middleware) callback(w http.ResponseWriter, r *http.Request, providerType string) error {
	if err := m.allowed(providerType); err != nil {
		return err
	}

	client, err := m.factory.Client(r, providerType)
	if err != nil {
		return err
	}

	expected, err := m.store.Retrieve(w, r, StateKey)
	if err != nil {
		return fmt.Errorf("could not retrieve login state - %w", err)
	}
	if expected == "" || r.FormValue("state") != expected {
		return ErrStateMismatch
	}

	token, err := client.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		return err
	}

	user, err := m.users.Create(client, token)
	if err != nil {
		return fmt.Errorf("could not resolve user for token - %w", err)
	}
	for _, verifier := range m.verifiers {
		user, err = verifier.Verify(m.log, user, token)
		if err != nil {
			return fmt.Errorf("identity verification failed - %w", err)
		}
	}

	target, err := m.store.Retrieve(w, r, ReturnURLKey)
	if err != nil {
		return fmt.Errorf("could not retrieve return URL - %w", err)
	}

	switch {
	case m.config.TokenCookie != "":
		http.SetCookie(w, &http.Cookie{
			Name:    m.config.TokenCookie,
			Value:   string(token),
			Path:    "/",
			Expires: time.Now().Add(tokenCookieTTL),
		})
	case m.config.TokenURLParam != "" && target != "":
		target = khttp.JoinURLParam(target, m.config.TokenURLParam, string(token))
	}

	m.log.Infof("completed %s login for user %q", providerType, user.Username)

	w.Header().Set("Authorization", "token "+string(token))
	if target != "" {
		w.Header().Set("Location", target)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

// forward handles every non auth request: resolve the acting user from
// the Authorization header, attach it to the context, and hand off to the
// application.
func (m *Middleware) forward(w http.ResponseWriter, r *http.Request, next http.Handler) error {
	credential := ParseAuthorization(r.Header.Values("Authorization"))

	user, err := m.users.FindOrNew(credential)
	if err != nil {
		return fmt.Errorf("could not resolve user - %w", err)
	}

	if user != nil {
		r = r.WithContext(SetUser(r.Context(), user))
		if user.Token != "" {
			w.Header().Set("Authorization", "token "+string(user.Token))
		}
	}

	if next != nil {
		next.ServeHTTP(w, r)
	}
	return nil
}

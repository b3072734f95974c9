// Package oauth adds third party OAuth2 login to an existing net/http
// application.
//
// # Introduction
//
// The package works as a request interception layer: wrap your application
// handler with a Middleware and two extra URL patterns start being
// recognized:
//
//	/auth/{provider}            starts the login flow: the user is
//	                            redirected to the identity provider.
//	/auth/{provider}/callback   completes it: the authorization code is
//	                            exchanged for an access token.
//
// Every other request passes through unchanged, with the acting user
// resolved from the Authorization header and attached to the request
// context, where handlers can recover it with GetUser.
//
// Simple setup:
//
//	users := oauth.NewMemoryUsers()
//	mw, err := oauth.New(users,
//	    oauth.WithConfig(config),
//	    oauth.WithLogger(log),
//	)
//
//	[...]
//
//	http.ListenAndServe(":8080", mw.Handler(appHandler))
//
// The login flow is started by sending the user to:
//
//	/auth/github?return=https://app.example/done
//
// where the return parameter is the absolute URL the user lands on once
// authentication completes. How the token travels back to the client -
// cookie, URL parameter, or Authorization header only - is selected in the
// Config.
//
// The OAuth2 protocol itself is supplied by golang.org/x/oauth2: this
// package only routes requests, keeps the return URL across the redirect
// round trip, and hands the resulting identity to your handlers.
package oauth

import (
	"context"
	"errors"

	"github.com/sduck/slim-oauth/lib/logger"
)

// Token is an opaque access token issued by an identity provider.
type Token string

// User is the identity attached to requests after authentication.
//
// The middleware itself only relies on the Token field; the rest is
// filled by the UserSource and any configured Verifiers.
type User struct {
	// Id is the provider specific identifier of the user, namespaced by
	// Provider. May be empty for users that never completed a login.
	Id       string
	Username string
	Provider string

	// Token is the access token tied to the user, empty if none.
	Token Token
}

// Client is the provider specific OAuth2 capability the middleware
// delegates to. One Client is bound to a single provider configuration
// and callback URL.
type Client interface {
	// AuthorizationURL returns the provider URL to redirect the user to,
	// carrying the supplied opaque state.
	AuthorizationURL(state string) string

	// Exchange trades an authorization code for an access token.
	Exchange(ctx context.Context, code string) (Token, error)
}

// UserSource resolves and creates users. It is supplied by the hosting
// application: this library has no opinion on how users are persisted.
type UserSource interface {
	// FindOrNew returns the user owning the given credential, or a fresh
	// unsaved user when the credential is empty or unknown.
	FindOrNew(credential string) (*User, error)

	// Create resolves or creates the user a freshly exchanged token
	// belongs to.
	Create(client Client, token Token) (*User, error)
}

// Verifier enriches or validates a user identity after token exchange,
// using provider specific mechanisms (eg, fetching the user profile).
type Verifier interface {
	// Scopes returns the extra oauth scopes the verifier needs.
	Scopes() []string

	// Verify returns the enriched user, or an error to abort the login.
	Verify(log logger.Logger, user *User, token Token) (*User, error)
}

var (
	// ErrUnknownProviderType indicates a provider outside the allow-list.
	ErrUnknownProviderType = errors.New("provider type is not allowed")

	// ErrUnknownProviderConfig indicates a provider with no configured
	// credentials. Distinct from ErrUnknownProviderType: the provider
	// passed the allow-list, but the factory cannot build a client for it.
	ErrUnknownProviderConfig = errors.New("provider type has no configuration")

	// ErrInvalidReturnURL indicates a missing or relative return parameter.
	ErrInvalidReturnURL = errors.New("return parameter is not an absolute URL")

	// ErrStateMismatch indicates a callback whose state parameter does not
	// match the one stored when the login started.
	ErrStateMismatch = errors.New("oauth state does not match the login request")
)

type userKey struct{}

// SetUser returns a context with the user attached.
// Use GetUser to retrieve it later.
func SetUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the user attached to a request context by the
// middleware. Returns nil if the context carries no user.
func GetUser(ctx context.Context) *User {
	user, _ := ctx.Value(userKey{}).(*User)
	return user
}

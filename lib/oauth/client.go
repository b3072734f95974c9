package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// endpoints lists the providers the library knows the oauth endpoints of.
// Other providers must configure auth_url and token_url explicitly.
var endpoints = map[string]oauth2.Endpoint{
	"github": github.Endpoint,
	"google": google.Endpoint,
}

func endpointFor(providerType string, provider ProviderConfig) (oauth2.Endpoint, error) {
	if provider.AuthURL != "" && provider.TokenURL != "" {
		return oauth2.Endpoint{AuthURL: provider.AuthURL, TokenURL: provider.TokenURL}, nil
	}
	if endpoint, ok := endpoints[providerType]; ok {
		return endpoint, nil
	}
	return oauth2.Endpoint{}, fmt.Errorf("no known oauth endpoints for provider %q - configure auth_url and token_url", providerType)
}

// oauth2Client implements Client on top of golang.org/x/oauth2.
type oauth2Client struct {
	conf *oauth2.Config
}

var _ Client = (*oauth2Client)(nil)

func (c *oauth2Client) AuthorizationURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

func (c *oauth2Client) Exchange(ctx context.Context, code string) (Token, error) {
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("could not exchange code for token - %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("provider returned an empty access token")
	}
	return Token(tok.AccessToken), nil
}

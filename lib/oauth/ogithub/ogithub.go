// Package ogithub provides a Verifier resolving the GitHub identity
// behind a freshly exchanged token.
//
// Add it to the middleware to have users carry their GitHub login:
//
//	mw, err := oauth.New(users, oauth.WithConfig(config),
//	    oauth.WithVerifiers(ogithub.New()))
package ogithub

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/go-github/github"
	"github.com/sduck/slim-oauth/lib/logger"
	"github.com/sduck/slim-oauth/lib/oauth"
	"golang.org/x/oauth2"
)

// Verifier fetches the authenticated user from the GitHub API and fills
// the identity fields of the user being logged in.
type Verifier struct {
	// BaseURL overrides the GitHub API endpoint, for tests or GitHub
	// Enterprise deployments. Must end with a slash.
	BaseURL *url.URL
}

var _ oauth.Verifier = (*Verifier)(nil)

func New() *Verifier {
	return &Verifier{}
}

func (v *Verifier) Scopes() []string {
	return []string{"read:user"}
}

func (v *Verifier) Verify(log logger.Logger, user *oauth.User, token oauth.Token) (*oauth.User, error) {
	ctx := context.Background()
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)})
	client := github.NewClient(oauth2.NewClient(ctx, source))
	if v.BaseURL != nil {
		client.BaseURL = v.BaseURL
	}

	ghUser, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("could not fetch github user - %w", err)
	}

	if user == nil {
		user = &oauth.User{Token: token}
	}
	user.Provider = "github.com"
	user.Id = strconv.FormatInt(ghUser.GetID(), 10)
	user.Username = ghUser.GetLogin()

	log.Debugf("github identity resolved to %q", user.Username)
	return user, nil
}

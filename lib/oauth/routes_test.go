package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		path     string
		route    Route
		provider string
	}{
		{"/auth/github", RouteInitiate, "github"},
		{"/auth/github/callback", RouteCallback, "github"},
		{"/auth/google", RouteInitiate, "google"},
		{"/auth/provider_1", RouteInitiate, "provider_1"},
		{"/auth/github/", RouteNone, ""},
		{"/auth/github/callback/", RouteNone, ""},
		{"/auth/github/callback/extra", RouteNone, ""},
		{"/auth/", RouteNone, ""},
		{"/auth", RouteNone, ""},
		{"/dashboard", RouteNone, ""},
		{"/prefix/auth/github", RouteNone, ""},
		{"/auth/git-hub", RouteNone, ""},
		{"", RouteNone, ""},
		{"/", RouteNone, ""},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			route, provider := MatchRoute(test.path)
			assert.Equal(t, test.route, route)
			assert.Equal(t, test.provider, provider)
		})
	}
}

func TestMatchRouteCallbackWins(t *testing.T) {
	// A callback path must never be classified as an initiate request.
	route, provider := MatchRoute("/auth/github/callback")
	assert.Equal(t, RouteCallback, route)
	assert.Equal(t, "github", provider)
}

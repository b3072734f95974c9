package oauth

import "regexp"

// Route classifies a request path for the middleware.
type Route int

const (
	// RouteNone is a pass-through request: neither auth pattern matched.
	RouteNone Route = iota
	// RouteInitiate starts the login flow ("/auth/{provider}").
	RouteInitiate
	// RouteCallback completes it ("/auth/{provider}/callback").
	RouteCallback
)

var (
	initiatePattern = regexp.MustCompile(`^/auth/(\w+)$`)
	callbackPattern = regexp.MustCompile(`^/auth/(\w+)/callback$`)
)

// MatchRoute classifies a request path, returning the matched provider
// type for auth routes and the empty string otherwise.
//
// The callback pattern is tested first so a callback path can never be
// taken for an initiate request.
func MatchRoute(path string) (Route, string) {
	if m := callbackPattern.FindStringSubmatch(path); m != nil {
		return RouteCallback, m[1]
	}
	if m := initiatePattern.FindStringSubmatch(path); m != nil {
		return RouteInitiate, m[1]
	}
	return RouteNone, ""
}

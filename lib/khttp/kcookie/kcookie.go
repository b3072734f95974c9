// Package kcookie provides modifiers to build http.Cookie objects.
//
// Functions creating cookies accept a list of kcookie.Modifier, so callers
// can tweak attributes like path, expiry or the secure bit without the
// callee having to enumerate every cookie attribute in its own options.
package kcookie

import (
	"net/http"
	"time"
)

// Modifier changes an attribute of a cookie being built.
type Modifier func(*http.Cookie)

// Modifiers is a list of Modifier, applied in order.
type Modifiers []Modifier

// Apply runs all the modifiers against a cookie, returning it for chaining.
func (mods Modifiers) Apply(c *http.Cookie) *http.Cookie {
	for _, m := range mods {
		m(c)
	}
	return c
}

func WithPath(path string) Modifier {
	return func(c *http.Cookie) {
		c.Path = path
	}
}

func WithExpires(at time.Time) Modifier {
	return func(c *http.Cookie) {
		c.Expires = at
	}
}

func WithMaxAge(age time.Duration) Modifier {
	return func(c *http.Cookie) {
		c.MaxAge = int(age.Seconds())
	}
}

func WithSecure(secure bool) Modifier {
	return func(c *http.Cookie) {
		c.Secure = secure
	}
}

func WithHTTPOnly(httpOnly bool) Modifier {
	return func(c *http.Cookie) {
		c.HttpOnly = httpOnly
	}
}

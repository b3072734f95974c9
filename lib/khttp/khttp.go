// Package khttp provides small helpers on top of net/http.
package khttp

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// RequestURL reconstructs the absolute URL the client used for a request.
//
// The standard library only fills r.URL with the path and query for server
// requests. Scheme and host are recovered from the request and the usual
// proxy headers.
func RequestURL(r *http.Request) *url.URL {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			u.Scheme = proto
		}
	}
	return &u
}

// JoinURLQuery joins two raw query strings with "&", tolerating empty ones.
func JoinURLQuery(q1, q2 string) string {
	if q1 == "" || q2 == "" {
		return q1 + q2
	}
	return q1 + "&" + q2
}

// JoinURLParam appends a key=value parameter to a URL string, choosing "?"
// or "&" depending on whether the URL already carries a query string. The
// value is escaped, the URL is assumed well formed.
func JoinURLParam(u, key, value string) string {
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + key + "=" + url.QueryEscape(value)
}

// RemoteIP returns the remote client IP address from a request.
//
// It gives precedence to the X-Forwarded-For header to work correctly
// behind proxies.
func RemoteIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// X-Forwarded-For can be a comma-separated list of IPs.
		// The first one is the original client.
		if parts := strings.Split(fwd, ","); len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// ClientOrigin describes where a request came from, for logging purposes.
func ClientOrigin(r *http.Request) string {
	return RemoteIP(r)
}

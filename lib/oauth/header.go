package oauth

import "strings"

// ParseAuthorization extracts a bearer credential from a set of raw
// Authorization header values.
//
// Each value must split on a single space into exactly a scheme and a
// credential; the scheme is compared case insensitively against "bearer"
// and "token". The first value that matches wins. Malformed values are
// skipped, not errors: a request with no usable header simply yields the
// empty credential.
func ParseAuthorization(values []string) string {
	for _, value := range values {
		parts := strings.Split(value, " ")
		if len(parts) != 2 {
			continue
		}
		switch strings.ToLower(parts[0]) {
		case "bearer", "token":
			return parts[1]
		}
	}
	return ""
}

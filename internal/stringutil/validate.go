// Package stringutil holds string format checks used by the validator.
package stringutil

import (
	"net/url"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail checks if s is a valid email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsAbsoluteURL reports whether s parses as a URL with a scheme and host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

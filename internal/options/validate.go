// Package options provides shared utilities for option validation across packages.
package options

import (
	"fmt"
	"strings"
)

// RequireOne ensures exactly one input source is specified. names and sources
// are parallel: sources[i] reports whether the source called names[i] is set.
// The error lists every name, e.g. "exactly one of file, url, or content must
// be provided (got 2)".
func RequireOne(names []string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return fmt.Errorf("exactly one of %s must be provided (got %d)", joinOr(names), count)
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return "the inputs"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}

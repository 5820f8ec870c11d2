// Package httputil provides HTTP helpers: status-code and media-type checks used by
// the validator, and the fetcher used to retrieve remote $ref targets.
package httputil

import (
	"mime"
	"slices"
	"strconv"
	"strings"
)

// SwaggerMethods lists the operation keys of an OAS 2.0 path item.
var SwaggerMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// OpenAPIMethods lists the operation keys of an OAS 3.x path item, which adds trace.
var OpenAPIMethods = append(append([]string(nil), SwaggerMethods...), "trace")

// standardCodes holds the status codes registered by RFC 9110 and its companions,
// grouped by class.
var standardCodes = map[byte][]int{
	'1': {100, 101, 102, 103},
	'2': {200, 201, 202, 203, 204, 205, 206, 207, 208, 226},
	'3': {300, 301, 302, 303, 304, 305, 307, 308},
	'4': {400, 401, 402, 403, 404, 405, 406, 407, 408, 409, 410, 411, 412, 413, 414,
		415, 416, 417, 418, 421, 422, 423, 424, 425, 426, 428, 429, 431, 451},
	'5': {500, 501, 502, 503, 504, 505, 506, 507, 508, 510, 511},
}

// ValidateStatusCode reports whether code may key a responses object: "default",
// an x- extension, a class wildcard 1XX through 5XX, or a number from 100 to 599.
func ValidateStatusCode(code string) bool {
	switch {
	case code == "default", strings.HasPrefix(code, "x-"):
		return true
	case len(code) != 3:
		return false
	case code[1:] == "XX":
		return code[0] >= '1' && code[0] <= '5'
	}
	n, ok := numericCode(code)
	return ok && n >= 100 && n <= 599
}

// IsNumericStatusCode reports whether code is three plain digits.
func IsNumericStatusCode(code string) bool {
	_, ok := numericCode(code)
	return ok
}

// IsStandardStatusCode reports whether code is a registered HTTP status code.
func IsStandardStatusCode(code string) bool {
	n, ok := numericCode(code)
	if !ok {
		return false
	}
	return slices.Contains(standardCodes[code[0]], n)
}

func numericCode(code string) (int, bool) {
	if len(code) != 3 || strings.TrimLeft(code, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(code)
	return n, err == nil
}

// IsValidMediaType reports whether mediaType parses per RFC 2045. The wildcards
// */* and type/* are accepted; */subtype is not.
func IsValidMediaType(mediaType string) bool {
	major, minor, ok := strings.Cut(mediaType, "/")
	if ok && minor == "*" {
		return major != "" && !strings.Contains(major, "/")
	}
	if major == "*" {
		return false
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}

// Package issues provides the issue type reported by document validation.
package issues

import (
	"fmt"

	"github.com/erraggy/oasdocs/internal/severity"
)

// Issue is a single problem found while validating a document. Path is dotted,
// as in "paths./pets.get.responses".
type Issue struct {
	Path     string            `json:"path"`
	Message  string            `json:"message"`
	Severity severity.Severity `json:"severity"`
	Field    string            `json:"field,omitempty"`
	Value    any               `json:"value,omitempty"`
	// SpecRef links the section of the OpenAPI specification the issue concerns.
	SpecRef string `json:"specRef,omitempty"`
}

var symbols = map[severity.Severity]string{
	severity.SeverityError:    "✗",
	severity.SeverityCritical: "✗",
	severity.SeverityWarning:  "⚠",
	severity.SeverityInfo:     "ℹ",
}

// String renders the issue as one line prefixed by a severity symbol, plus an
// indented reference line when SpecRef is set.
func (i Issue) String() string {
	symbol, ok := symbols[i.Severity]
	if !ok {
		symbol = "?"
	}
	s := fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
	if i.SpecRef != "" {
		s += "\n    Spec: " + i.SpecRef
	}
	return s
}

// IsBlocking reports whether the issue makes a document invalid.
func (i Issue) IsBlocking() bool {
	return i.Severity == severity.SeverityError || i.Severity == severity.SeverityCritical
}

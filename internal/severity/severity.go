// Package severity ranks the issues reported by the validator package.
package severity

// Severity is the level of a validation issue. Error and Critical block a
// document; Warning and Info do not.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	// SeverityCritical marks a document too malformed to check any further.
	SeverityCritical
)

var names = [...]string{
	SeverityError:    "error",
	SeverityWarning:  "warning",
	SeverityInfo:     "info",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// MarshalText makes JSON output read "error" rather than 0.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

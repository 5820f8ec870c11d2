package validator

// Option configures a Validator.
type Option func(*Validator)

// WithIncludeWarnings enables or disables best practice warnings
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(v *Validator) {
		v.IncludeWarnings = enabled
	}
}

// WithStrictMode enables or disables validation beyond what OpenAPI requires.
// In strict mode warnings fail validation and non-standard status codes are reported.
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(v *Validator) {
		v.StrictMode = enabled
	}
}

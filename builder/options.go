package builder

import "github.com/erraggy/oasdocs/loader"

// Option configures a Builder instance.
// Options are applied when creating a new Builder with New().
type Option func(*Builder)

// WithLoader sets the loader used to parse document text and path fragments.
// Default: loader.Default()
func WithLoader(l Loader) Option {
	return func(b *Builder) {
		if l != nil {
			b.loader = l
		}
	}
}

// WithResolver sets the resolver that expands $ref pointers.
// Default: resolver.New()
func WithResolver(r Resolver) Option {
	return func(b *Builder) {
		if r != nil {
			b.resolver = r
		}
	}
}

// WithValidator sets the validator run on resolved documents.
// Default: validator.New()
func WithValidator(v Validator) Option {
	return func(b *Builder) {
		if v != nil {
			b.validator = v
		}
	}
}

// WithLogger sets the logger for pipeline diagnostics.
// Default: loader.NopLogger
func WithLogger(l loader.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

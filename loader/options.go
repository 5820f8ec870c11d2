package loader

// Option configures a Cache.
type Option func(*Cache)

// WithParseFunc sets the parser invoked on cache misses.
// Default: ParseYAML
func WithParseFunc(fn ParseFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.parse = fn
		}
	}
}

// WithHuJSON enables or disables accepting JSON with comments and trailing commas.
// Default: false
func WithHuJSON(enabled bool) Option {
	return func(c *Cache) {
		c.hujson = enabled
	}
}

// WithLogger sets the logger for cache diagnostics.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

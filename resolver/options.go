package resolver

import (
	"net/http"

	"github.com/erraggy/oasdocs/loader"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseDir enables file references, resolved relative to dir. References that
// escape dir are rejected.
// Default: "" (file references are rejected)
func WithBaseDir(dir string) Option {
	return func(r *Resolver) {
		r.baseDir = dir
	}
}

// WithHTTPClient enables HTTP(S) references, fetched with client.
// Default: nil (HTTP references are rejected)
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.fetcher.Client = client
		r.httpEnabled = client != nil
	}
}

// WithUserAgent sets the User-Agent sent when fetching HTTP references.
// Default: oasdocs.UserAgent()
func WithUserAgent(ua string) Option {
	return func(r *Resolver) {
		r.fetcher.UserAgent = ua
	}
}

// WithMaxFileSize caps the size of an external document in bytes.
// Default: 10MB
func WithMaxFileSize(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxFileSize = n
			r.fetcher.MaxBodySize = n
		}
	}
}

// WithMaxDepth caps the nesting depth walked while resolving.
// Default: MaxRefDepth
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithMaxNodes caps the number of nodes walked while resolving, counting every
// copy a ref expands into.
// Default: MaxExpandedNodes
func WithMaxNodes(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxNodes = n
		}
	}
}

// WithLogger sets the logger for resolution diagnostics.
// Default: loader.NopLogger
func WithLogger(l loader.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

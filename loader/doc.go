// Package loader turns raw YAML or JSON text into an untyped tree.
//
// Results are memoized by the exact input text. The same document text is often
// submitted many times (for example, re-validating an editor buffer that has not
// changed), so a [Cache] parses each distinct text once for its whole lifetime and
// never evicts. [Default] returns the process-wide cache shared by the builder and
// path editor unless another cache is injected.
//
// Every [Cache.Load] returns a private deep copy of the cached tree, so callers may
// mutate what they receive without affecting later loads.
//
// # Parse backends
//
//   - [ParseYAML]: go.yaml.in/yaml/v4 (the default; also accepts JSON)
//   - [ParseGoccyYAML]: github.com/goccy/go-yaml
//
// With [WithHuJSON] enabled, JSON input may carry comments and trailing commas; it is
// standardized with github.com/tailscale/hujson before parsing.
package loader

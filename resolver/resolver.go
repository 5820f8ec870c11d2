package resolver

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/internal/httputil"
	"github.com/erraggy/oasdocs/internal/maputil"
	"github.com/erraggy/oasdocs/loader"
	"github.com/erraggy/oasdocs/oaserrors"
)

const (
	// MaxRefDepth is the maximum nesting depth walked during resolution.
	// This prevents stack overflow from deeply nested (but non-circular) references
	MaxRefDepth = 100

	// MaxCachedDocuments is the maximum number of external documents loaded per Resolve call.
	MaxCachedDocuments = 100

	// MaxExpandedNodes is the maximum number of nodes walked per Resolve call.
	// Expanding a ref copies its target, so a small document whose definitions
	// reference each other repeatedly can expand exponentially.
	MaxExpandedNodes = 1_000_000
)

// Resolver expands $ref pointers. A Resolver holds only configuration and is safe
// for concurrent use; every Resolve call keeps its own state.
type Resolver struct {
	baseDir     string
	httpEnabled bool
	fetcher     httputil.Fetcher
	maxFileSize int64
	maxDepth    int
	maxNodes    int
	logger      loader.Logger
}

// New creates a Resolver for local references. Options enable file and HTTP references.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:     httputil.Fetcher{UserAgent: oasdocs.UserAgent()},
		maxFileSize: httputil.DefaultMaxBodySize,
		maxDepth:    MaxRefDepth,
		maxNodes:    MaxExpandedNodes,
		logger:      loader.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve expands every $ref in doc, modifying doc in place, and returns it.
//
// Failures are *oaserrors.ReferenceError for references that cannot be followed,
// *oaserrors.FetchError (wrapped) for remote documents that cannot be retrieved, and
// *oaserrors.ResourceLimitError when limits are exceeded. Cancelling ctx aborts
// resolution with ctx.Err().
func (r *Resolver) Resolve(ctx context.Context, doc map[string]any) (map[string]any, error) {
	if doc == nil {
		return nil, &oaserrors.ReferenceError{Message: "cannot resolve a nil document"}
	}

	s := &session{
		Resolver:  r,
		ctx:       ctx,
		resolving: make(map[string]bool),
		documents: make(map[string]map[string]any),
	}
	resolved, err := s.walk(doc, doc, "", 0)
	if err != nil {
		return nil, err
	}
	if s.circular > 0 {
		r.logger.Debug("left circular references in place", "count", s.circular)
	}
	return resolved.(map[string]any), nil
}

// session is the state of one Resolve call.
type session struct {
	*Resolver
	ctx context.Context
	// resolving tracks refs currently being expanded in the recursion stack
	resolving map[string]bool
	// documents caches external documents by location
	documents map[string]map[string]any
	circular  int
	nodes     int
}

// walk resolves refs inside current and returns its replacement. root is the
// document current belongs to and base is that document's location ("" for the
// document being resolved).
func (s *session) walk(root map[string]any, current any, base string, depth int) (any, error) {
	if depth > s.maxDepth {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        int64(s.maxDepth),
			Actual:       int64(depth),
			Message:      "structure too deeply nested",
		}
	}
	s.nodes++
	if s.nodes > s.maxNodes {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "expanded_nodes",
			Limit:        int64(s.maxNodes),
			Message:      "references expand to too large a document",
		}
	}
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}

	switch v := current.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			return s.expand(root, v, ref, base, depth)
		}
		for k, val := range v {
			resolved, err := s.walk(root, val, base, depth+1)
			if err != nil {
				return nil, err
			}
			v[k] = resolved
		}
		return v, nil

	case []any:
		for i, item := range v {
			resolved, err := s.walk(root, item, base, depth+1)
			if err != nil {
				return nil, err
			}
			v[i] = resolved
		}
		return v, nil

	default:
		return current, nil
	}
}

// expand replaces a {"$ref": ...} object with a copy of its target.
func (s *session) expand(root, refObj map[string]any, ref, base string, depth int) (any, error) {
	// A pointer to the document root is always circular.
	if ref == "#" || ref == "#/" {
		s.circular++
		return refObj, nil
	}

	key := canonicalKey(ref, base)
	if s.resolving[key] {
		s.circular++
		return refObj, nil
	}
	// Keep the ref marked until its expanded content has been walked, so a schema
	// that references itself is detected.
	s.resolving[key] = true
	defer delete(s.resolving, key)

	target, targetRoot, targetBase, err := s.lookup(root, ref, base)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("resolved reference", "ref", ref, "depth", depth)

	// Copy so that two refs to the same target never share maps.
	return s.walk(targetRoot, maputil.DeepCopy(target), targetBase, depth+1)
}

// lookup finds the value a ref points to, along with the document containing it
// and that document's location.
func (s *session) lookup(root map[string]any, ref, base string) (any, map[string]any, string, error) {
	location, fragment, _ := strings.Cut(ref, "#")
	if location == "" {
		target, err := resolvePointer(root, fragment)
		if err != nil {
			return nil, nil, "", &oaserrors.ReferenceError{Ref: ref, RefType: "local", Cause: err}
		}
		return target, root, base, nil
	}

	location, refType, err := s.locate(ref, location, base)
	if err != nil {
		return nil, nil, "", err
	}
	doc, err := s.document(ref, location, refType)
	if err != nil {
		return nil, nil, "", err
	}
	target, err := resolvePointer(doc, fragment)
	if err != nil {
		return nil, nil, "", &oaserrors.ReferenceError{Ref: ref, RefType: refType, Cause: err}
	}
	return target, doc, location, nil
}

// locate turns the document part of a ref into an absolute URL or file path.
func (s *session) locate(ref, location, base string) (string, string, error) {
	if isHTTP(location) {
		return location, "http", nil
	}
	if isHTTP(base) {
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", "", &oaserrors.ReferenceError{Ref: ref, RefType: "http", Message: "invalid base URL", Cause: err}
		}
		rel, err := url.Parse(location)
		if err != nil {
			return "", "", &oaserrors.ReferenceError{Ref: ref, RefType: "http", Message: "invalid relative URL", Cause: err}
		}
		return baseURL.ResolveReference(rel).String(), "http", nil
	}

	if s.baseDir == "" {
		return "", "", &oaserrors.ReferenceError{Ref: ref, RefType: "file", Message: "file references require a base directory"}
	}
	dir := s.baseDir
	if base != "" {
		dir = filepath.Dir(base)
	}
	filePath := location
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(dir, filePath)
	}
	filePath = filepath.Clean(filePath)

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", "", fmt.Errorf("resolver: failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", "", fmt.Errorf("resolver: failed to resolve file path: %w", err)
	}
	// filepath.Rel also fails for paths on different volumes
	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", "", &oaserrors.ReferenceError{Ref: ref, RefType: "file", IsPathTraversal: true}
	}
	return absPath, "file", nil
}

// document loads (or returns the cached copy of) an external document.
func (s *session) document(ref, location, refType string) (map[string]any, error) {
	if doc, ok := s.documents[location]; ok {
		return doc, nil
	}
	if len(s.documents) >= MaxCachedDocuments {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        MaxCachedDocuments,
			Actual:       int64(len(s.documents)),
			Message:      "too many external references",
		}
	}

	var data []byte
	switch refType {
	case "http":
		if !s.httpEnabled {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "http", Message: "HTTP references are disabled"}
		}
		body, _, err := s.fetcher.Fetch(s.ctx, location)
		if err != nil {
			return nil, fmt.Errorf("resolver: resolving %s: %w", ref, err)
		}
		data = body
	default:
		info, err := os.Stat(location)
		if err != nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "file", Message: "failed to read external file", Cause: err}
		}
		if info.Size() > s.maxFileSize {
			return nil, &oaserrors.ResourceLimitError{
				ResourceType: "file_size",
				Limit:        s.maxFileSize,
				Actual:       info.Size(),
				Message:      location,
			}
		}
		body, err := os.ReadFile(location) //nolint:gosec // G304 - path is confined to the base directory above
		if err != nil {
			return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "file", Message: "failed to read external file", Cause: err}
		}
		data = body
	}

	// The YAML parser handles both YAML and JSON
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: refType, Message: "failed to parse external document", Cause: err}
	}
	doc, ok := maputil.DeepCopy(raw).(map[string]any)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: refType, Message: "external document is not a mapping"}
	}
	s.documents[location] = doc
	s.logger.Debug("loaded external document", "location", location, "bytes", len(data))
	return doc, nil
}

// resolvePointer follows an RFC 6901 JSON Pointer (without the leading '#') in doc.
func resolvePointer(doc map[string]any, pointer string) (any, error) {
	if pointer == "" || pointer == "/" {
		return doc, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid JSON pointer %q: must start with '/'", pointer)
	}

	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	current := any(doc)
	for i, part := range parts {
		part = unescapeJSONPointer(part)

		switch v := current.(type) {
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil, fmt.Errorf("reference not found: #/%s (missing key: %s)", strings.Join(parts[:i+1], "/"), part)
			}
			current = next

		case []any:
			index, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid array index '%s' in reference: #/%s (must be a non-negative integer)", part, strings.Join(parts[:i+1], "/"))
			}
			if index < 0 || index >= len(v) {
				return nil, fmt.Errorf("array index %d out of bounds (length %d) in reference: #/%s", index, len(v), strings.Join(parts[:i+1], "/"))
			}
			current = v[index]

		default:
			return nil, fmt.Errorf("cannot traverse into type %T at #/%s", v, strings.Join(parts[:i], "/"))
		}
	}
	return current, nil
}

// unescapeJSONPointer unescapes JSON Pointer tokens
// Per RFC 6901, ~1 represents / and ~0 represents ~
func unescapeJSONPointer(token string) string {
	if decoded, err := url.PathUnescape(token); err == nil {
		token = decoded
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// canonicalKey identifies a ref target independent of how the ref was spelled
// relative to its document.
func canonicalKey(ref, base string) string {
	if strings.HasPrefix(ref, "#") {
		return base + ref
	}
	if isHTTP(base) {
		if baseURL, err := url.Parse(base); err == nil {
			if rel, err := url.Parse(ref); err == nil {
				return baseURL.ResolveReference(rel).String()
			}
		}
	}
	if base != "" && !isHTTP(ref) && !filepath.IsAbs(ref) {
		return path.Join(filepath.ToSlash(filepath.Dir(base)), ref)
	}
	return ref
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

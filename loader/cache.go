package loader

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/erraggy/oasdocs/internal/maputil"
)

// Cache memoizes parsed trees by exact document text. It is safe for concurrent use.
//
// Entries are never evicted: a Cache grows for as long as it lives. Concurrent first
// loads of the same text share a single parse.
type Cache struct {
	parse  ParseFunc
	hujson bool
	logger Logger

	mu      sync.RWMutex
	entries map[string]any
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		parse:   ParseYAML,
		logger:  NopLogger{},
		entries: make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCache = sync.OnceValue(func() *Cache { return New() })

// Default returns the process-wide cache, created on first use.
func Default() *Cache {
	return defaultCache()
}

// Load parses text, or returns the tree parsed by an earlier call with identical text
// without invoking the parser again. The returned tree is a private copy.
//
// Malformed text fails with *oaserrors.YAMLError. Failures are not cached.
func (c *Cache) Load(text string) (any, error) {
	if tree, ok := c.lookup(text); ok {
		c.hits.Add(1)
		c.logger.Debug("loader cache hit", "bytes", len(text))
		return maputil.DeepCopy(tree), nil
	}

	ran := false
	tree, err, _ := c.group.Do(text, func() (any, error) {
		ran = true
		// Another caller may have finished the parse between lookup and Do.
		if tree, ok := c.lookup(text); ok {
			c.hits.Add(1)
			return tree, nil
		}
		c.misses.Add(1)
		tree, err := c.parseText(text)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[text] = tree
		c.mu.Unlock()
		return tree, nil
	})
	// Callers that waited on another caller's parse count too.
	if !ran {
		if err != nil {
			c.misses.Add(1)
		} else {
			c.hits.Add(1)
		}
	}
	if err != nil {
		c.logger.Debug("loader parse failed", "bytes", len(text), "error", err)
		return nil, err
	}
	return maputil.DeepCopy(tree), nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Hits returns the number of loads served from an already parsed tree, including
// loads that waited on a concurrent parse of the same text. Hits()+Misses() is
// the total number of loads.
func (c *Cache) Hits() int64 {
	return c.hits.Load()
}

// Misses returns the number of loads that found no parsed tree. Each one ran
// the parser, except loads that waited on a concurrent parse that failed.
func (c *Cache) Misses() int64 {
	return c.misses.Load()
}

func (c *Cache) lookup(text string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tree, ok := c.entries[text]
	return tree, ok
}

// parseText runs the configured parser and normalizes its output so that every
// mapping in the cached tree is a map[string]any.
func (c *Cache) parseText(text string) (any, error) {
	input := text
	if c.hujson {
		input = standardizeHuJSON(text)
	}
	tree, err := c.parse(input)
	if err != nil {
		return nil, newYAMLError(err)
	}
	c.logger.Debug("parsed document", "bytes", len(text))
	return maputil.DeepCopy(tree), nil
}

package peggle

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nathaniel-bennett/peggle/schema"
	"github.com/nathaniel-bennett/peggle/syntax"
)

const (
	// DefaultCacheSize is the capacity NewCache uses for sizes below 1
	DefaultCacheSize = 128

	restrictionCacheSize = 512
)

// restrictions memoizes compiled field restriction patterns. Restrictions
// carry no fields, so the text alone identifies them.
var restrictions, _ = lru.New[string, *syntax.Expression](restrictionCacheSize)

func compileRestriction(pattern string) (*syntax.Expression, error) {
	if expr, ok := restrictions.Get(pattern); ok {
		return expr, nil
	}

	expr, err := syntax.CompileRestriction(pattern)
	if err != nil {
		return nil, err
	}

	restrictions.Add(pattern, expr)

	return expr, nil
}

type cacheKey struct {
	pattern string
	schema  *schema.Schema
	options options
}

// Cache holds recently compiled patterns, keyed by pattern text, schema
// identity and options. It is safe for concurrent use.
type Cache struct {
	patterns *lru.Cache[cacheKey, *Pattern]
}

// NewCache creates a cache holding up to size patterns
func NewCache(size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}

	patterns, _ := lru.New[cacheKey, *Pattern](size)

	return &Cache{patterns: patterns}
}

// Compile returns the cached pattern or compiles and stores it.
// Compile errors are not cached.
func (c *Cache) Compile(pattern string, s *schema.Schema, opts ...Option) (*Pattern, error) {
	key := cacheKey{pattern: pattern, schema: s, options: buildOptions(opts)}

	if p, ok := c.patterns.Get(key); ok {
		return p, nil
	}

	p, err := Compile(pattern, s, opts...)
	if err != nil {
		return nil, err
	}

	c.patterns.Add(key, p)

	return p, nil
}

// Len returns the number of cached patterns
func (c *Cache) Len() int {
	return c.patterns.Len()
}

package cache

import (
	"context"
	"strings"
	"time"

	"github.com/letolabs/treemachine/pkg/observability"
)

// TTLResolve is how long a cached resolution stays valid.
const TTLResolve = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
// A zero ttl stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ResolveKey returns the key for a resolution of the input whose
	// canonical bytes hash to inputHash.
	ResolveKey(inputHash string, opts ResolveKeyOpts) string
}

// ResolveKeyOpts holds every option that changes a resolution's output.
type ResolveKeyOpts struct {
	Method string `json:"method"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResolveKey implements Keyer.
func (DefaultKeyer) ResolveKey(inputHash string, opts ResolveKeyOpts) string {
	return hashKey("resolve", inputHash, opts)
}

// instrumented reports cache traffic to the observability hooks.
type instrumented struct {
	Cache
}

// Instrument wraps c so every Get and Set emits observability cache events.
// The event key type is the key's namespace, e.g. "resolve".
func Instrument(c Cache) Cache {
	if _, ok := c.(*instrumented); ok {
		return c
	}
	return &instrumented{Cache: c}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

// keyType returns the namespace segment just before the hash, so scoped
// keys ("tenant:resolve:<hash>") report the same type as unscoped ones.
func keyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}

package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Cache defines the interface for caching operations. The pricing engine
// stores resolved candidate rule sets keyed by a context fingerprint;
// entries are never mutated in place, only replaced wholesale.
type Cache interface {
	// Get retrieves a value from the cache
	// Returns the value and a boolean indicating whether the key was found
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set adds a value to the cache with the specified expiration
	// If expiration is 0, the item never expires (but may be evicted)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes a key from the cache
	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes all keys with the given prefix and returns
	// how many entries were dropped
	DeleteByPrefix(ctx context.Context, prefix string) int

	// Flush removes all items from the cache
	Flush(ctx context.Context)
}

// Predefined cache key prefixes for different entity types
const (
	PrefixPricing  = "pricing:v1:"
	PrefixItem     = "item:v1:"
	PrefixCustomer = "customer:v1:"
)

// GenerateKey creates a cache key from a prefix and a set of parameters
// It joins all parameters with a colon and appends them to the prefix
func GenerateKey(prefix string, params ...interface{}) string {
	parts := make([]string, len(params)+1)
	parts[0] = strings.TrimSuffix(prefix, ":")

	for i, param := range params {
		parts[i+1] = fmt.Sprintf("%v", param)
	}

	return strings.Join(parts, ":")
}

// GenerateFingerprint builds a deterministic cache key from the ordered
// core context parts plus extra keyed parameters sorted by key, so the
// same pricing context always resolves to the same entry.
func GenerateFingerprint(prefix string, parts []interface{}, extra map[string]string) string {
	params := make([]interface{}, 0, len(parts)+len(extra))
	params = append(params, parts...)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		params = append(params, fmt.Sprintf("%s=%s", k, extra[k]))
	}

	return GenerateKey(prefix, params...)
}

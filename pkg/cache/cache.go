// Package cache stores rendered artifacts between CLI runs.
//
// Rendering a diagram starts a Graphviz runtime, which dominates the run
// time of small scenes. The tree command keys its output by a hash of the
// DOT source and the render settings and reuses it while it is fresh.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// DiagramTTL is how long a rendered diagram stays valid.
const DiagramTTL = 7 * 24 * time.Hour

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key derives a cache key from a namespace and any JSON-encodable parts.
// The key format is namespace:sha256(parts).
func Key(namespace string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", namespace, Hash(data))
}

// DiagramKey is the key of a diagram rendered from dot.
func DiagramKey(dot, format string, scale float64) string {
	return Key("diagram", format, scale, Hash([]byte(dot)))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

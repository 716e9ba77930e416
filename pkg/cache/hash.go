package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GraphKeyOpts holds the inputs that change a built graph besides the file
// content.
type GraphKeyOpts struct {
	Format         string  `json:"format"` // kml, roads, graph
	Limit          int     `json:"limit,omitempty"`
	MaxDistSquared float64 `json:"max_dist_squared,omitempty"`
}

// GraphKey returns the key of a graph built from content with the given
// hash and options.
func GraphKey(contentHash string, opts GraphKeyOpts) string {
	return hashKey("graph", contentHash, opts)
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores raw fetched bodies (RSS feeds, article pages) so repeated
// verifications within the TTL do not re-hit the provider.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	// Keys double as file names in the disk layer, so keep them plain
	return "trustify-v1-" + hex.EncodeToString(hash[:])
}

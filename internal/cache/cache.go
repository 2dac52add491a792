package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for the filter memo
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// Key builds a memo key from the filter inputs.
// The query is folded to lowercase because matching is case-insensitive.
func Key(category string, query string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(query)))
	return "lovewall:v1:" + category + ":" + hex.EncodeToString(hash[:8])
}

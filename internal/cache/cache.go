package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache memoises encoded analysis results within a single run
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// Key derives a cache key from a namespace and the analysed text
func Key(namespace, text string) string {
	hash := sha256.Sum256([]byte(text))
	return "casebrief:v1:" + namespace + ":" + hex.EncodeToString(hash[:])
}

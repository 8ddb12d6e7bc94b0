package cache

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is the content hash of text used in cache keys. Stable across
// processes; not meant to resist collisions on purpose.
func Fingerprint(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// Key derives the cache key as tenantID:modelID:fingerprint.
func Key(tenantID string, modelID string, text string) string {
	return tenantID + ":" + modelID + ":" + Fingerprint(text)
}

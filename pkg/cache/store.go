// Package cache stores generated topic content (explanations, resource lists)
// so repeated requests for the same topic do not hit the provider again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Key builds a stable key from case-insensitive parts.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
		h.Write([]byte{0})
	}
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

package cache

import (
	"crypto/sha256"
	"fmt"
	"time"

	"AirportChat/internal/session"
)

// CachedReply is one memoized turn reply. Replies are data-backed, so
// entries carry a timestamp and expire instead of living forever. Entity
// is the entity the original turn resolved, if any, so a hit can restore
// the same session context the original turn established.
type CachedReply struct {
	Reply     string
	Entity    *session.ResolvedEntity
	Timestamp time.Time
}

// Expired reports whether the entry is older than ttl.
func (c CachedReply) Expired(ttl time.Duration) bool {
	return time.Since(c.Timestamp) > ttl
}

// Key derives a cache key from the session and message. Scoping by session
// keeps follow-up replies, which depend on per-session context, from leaking
// across conversations.
func Key(sessionID, message string) string {
	h := sha256.New()
	h.Write([]byte(sessionID))
	h.Write([]byte{0})
	h.Write([]byte(message))
	return fmt.Sprintf("%x", h.Sum(nil))
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyScopedBySession(t *testing.T) {
	assert.Equal(t, Key("s1", "hello"), Key("s1", "hello"))
	assert.NotEqual(t, Key("s1", "hello"), Key("s2", "hello"))
	assert.NotEqual(t, Key("s1", "hello"), Key("s1", "goodbye"))
	// The separator keeps session/message boundaries from colliding.
	assert.NotEqual(t, Key("s1a", "b"), Key("s1", "ab"))
}

func TestExpired(t *testing.T) {
	fresh := CachedReply{Reply: "hi", Timestamp: time.Now()}
	assert.False(t, fresh.Expired(time.Minute))

	stale := CachedReply{Reply: "hi", Timestamp: time.Now().Add(-2 * time.Minute)}
	assert.True(t, stale.Expired(time.Minute))
}

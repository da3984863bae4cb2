package tokencache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	_, ok := cache.Get("t1", "a1")
	assert.False(t, ok)
	assert.False(t, cache.Has("t1", "a1"))

	cache.Set("t1", "a1", "token-1")
	token, ok := cache.Get("t1", "a1")
	assert.True(t, ok)
	assert.Equal(t, "token-1", token)
	assert.True(t, cache.Has("t1", "a1"))

	// Same account id under a different tenant is a different entry.
	assert.False(t, cache.Has("t2", "a1"))

	// Overwrite.
	cache.Set("t1", "a1", "token-2")
	token, _ = cache.Get("t1", "a1")
	assert.Equal(t, "token-2", token)

	cache.Remove("t1", "a1")
	assert.False(t, cache.Has("t1", "a1"))

	// Removing an absent entry is a no-op.
	cache.Remove("t1", "a1")
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Set("tenant", "account", "token")
			cache.Get("tenant", "account")
			cache.Has("tenant", "account")
		}()
	}
	wg.Wait()

	token, ok := cache.Get("tenant", "account")
	assert.True(t, ok)
	assert.Equal(t, "token", token)
}

package tokencache

import "sync"

// SecretCache holds bearer tokens for connected mailboxes, keyed by
// (tenantID, accountID). Entries are deliberately never written to the
// document store: losing the cache only forces a reconnect.
type SecretCache interface {
	Get(tenantID, accountID string) (string, bool)
	Set(tenantID, accountID, token string)
	Remove(tenantID, accountID string)
	Has(tenantID, accountID string) bool
}

type memoryCache struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryCache creates an in-process SecretCache.
func NewMemoryCache() SecretCache {
	return &memoryCache{
		tokens: make(map[string]string),
	}
}

func cacheKey(tenantID, accountID string) string {
	return tenantID + ":" + accountID
}

func (c *memoryCache) Get(tenantID, accountID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	token, ok := c.tokens[cacheKey(tenantID, accountID)]
	return token, ok
}

func (c *memoryCache) Set(tenantID, accountID, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[cacheKey(tenantID, accountID)] = token
}

func (c *memoryCache) Remove(tenantID, accountID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, cacheKey(tenantID, accountID))
}

func (c *memoryCache) Has(tenantID, accountID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.tokens[cacheKey(tenantID, accountID)]
	return ok
}

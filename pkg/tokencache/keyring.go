package tokencache

import (
	"log"

	"github.com/99designs/keyring"
)

const serviceName = "crmdesk"

// keyringCache stores tokens in the operating system keyring. It satisfies
// the same contract as the in-memory cache; entries still never reach the
// document store.
type keyringCache struct {
	ring keyring.Keyring
}

// NewKeyringCache opens the system keyring as a SecretCache backend.
func NewKeyringCache() (SecretCache, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/crmdesk/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("crmdesk-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, err
	}
	return &keyringCache{ring: ring}, nil
}

func (c *keyringCache) Get(tenantID, accountID string) (string, bool) {
	item, err := c.ring.Get(cacheKey(tenantID, accountID))
	if err != nil {
		return "", false
	}
	return string(item.Data), true
}

func (c *keyringCache) Set(tenantID, accountID, token string) {
	err := c.ring.Set(keyring.Item{
		Key:  cacheKey(tenantID, accountID),
		Data: []byte(token),
	})
	if err != nil {
		log.Printf("[TokenCache] failed to store token for %s/%s: %v", tenantID, accountID, err)
	}
}

func (c *keyringCache) Remove(tenantID, accountID string) {
	if err := c.ring.Remove(cacheKey(tenantID, accountID)); err != nil {
		log.Printf("[TokenCache] failed to evict token for %s/%s: %v", tenantID, accountID, err)
	}
}

func (c *keyringCache) Has(tenantID, accountID string) bool {
	_, err := c.ring.Get(cacheKey(tenantID, accountID))
	return err == nil
}

package usecase

import (
	"log"

	clientrepo "crmdesk-backend/internal/client/repository"
)

// ClientMatcher resolves participant addresses against the tenant's client
// roster. Matching is exact and case-insensitive: no fuzzy or domain-level
// matching.
type ClientMatcher struct {
	clientRepo clientrepo.ClientRepository
}

// NewClientMatcher creates a new instance of ClientMatcher
func NewClientMatcher(clientRepo clientrepo.ClientRepository) *ClientMatcher {
	return &ClientMatcher{
		clientRepo: clientRepo,
	}
}

// Match returns the ids of every client whose registered email equals one
// of the given addresses, deduplicated in first-hit order. A lookup
// failure on one address is logged and skipped; the remaining addresses
// are still matched. Matching runs inside the per-message sync loop and
// must degrade instead of aborting the batch.
func (m *ClientMatcher) Match(tenantID string, addresses []string) []string {
	seen := make(map[string]struct{})
	var clientIDs []string

	for _, address := range addresses {
		client, err := m.clientRepo.FindByEmail(tenantID, address)
		if err != nil {
			log.Printf("[Matcher] roster lookup failed for %s: %v", address, err)
			continue
		}
		if client == nil {
			continue
		}
		if _, ok := seen[client.ID]; ok {
			continue
		}
		seen[client.ID] = struct{}{}
		clientIDs = append(clientIDs, client.ID)
	}

	return clientIDs
}

package repository

import (
	clientdomain "crmdesk-backend/internal/client/domain"
)

// ClientRepository is the read-only roster lookup used by the matcher.
type ClientRepository interface {
	// FindByEmail resolves an exact, case-insensitive address lookup.
	// Returns nil without error when no client is registered under it.
	FindByEmail(tenantID, email string) (*clientdomain.Client, error)

	// FindByID returns the client or nil when absent.
	FindByID(tenantID, id string) (*clientdomain.Client, error)
}

package repository

import (
	emaildomain "crmdesk-backend/internal/email/domain"
)

// EmailRepository persists matched emails per tenant. Writes are keyed by
// (tenant, message id): re-writing an already stored message overwrites
// its row and client links, it never duplicates.
type EmailRepository interface {
	// Upsert stores the email and rewrites its client links atomically.
	// The email must carry at least one client id.
	Upsert(email *emaildomain.Email) error

	// FindByMessageID returns the stored email with client ids populated,
	// or nil when the message was never persisted.
	FindByMessageID(tenantID, messageID string) (*emaildomain.Email, error)

	// ListByTenant returns the tenant's stored emails, newest first.
	ListByTenant(tenantID string, limit, offset int) ([]*emaildomain.Email, error)

	// ListByClient returns every stored email linked to the client,
	// newest first.
	ListByClient(tenantID, clientID string) ([]*emaildomain.Email, error)

	// UpdateFlags sets the read/starred flags on a stored email.
	UpdateFlags(tenantID, messageID string, isRead, isStarred bool) error

	// Delete removes the email and its client links.
	Delete(tenantID, messageID string) error
}

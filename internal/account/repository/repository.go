package repository

import (
	"time"

	accountdomain "crmdesk-backend/internal/account/domain"
)

// AccountRepository persists connected mailbox records per tenant.
type AccountRepository interface {
	// Upsert inserts the account or overwrites the existing row with the
	// same id. Connecting twice is idempotent.
	Upsert(account *accountdomain.EmailAccount) error

	// FindByID returns the tenant's account or nil when absent.
	FindByID(tenantID, id string) (*accountdomain.EmailAccount, error)

	// ListByTenant returns all accounts connected by the tenant.
	ListByTenant(tenantID string) ([]*accountdomain.EmailAccount, error)

	// Delete removes the account row. Emails persisted under the account
	// are untouched.
	Delete(tenantID, id string) error

	// SetSyncStatus updates the sync status and, when non-nil, the last
	// sync timestamp.
	SetSyncStatus(tenantID, id, status string, lastSyncAt *time.Time) error
}

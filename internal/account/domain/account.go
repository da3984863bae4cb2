package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sync status values for a connected mailbox.
const (
	SyncStatusPending  = "pending"
	SyncStatusActive   = "active"
	SyncStatusInactive = "inactive"
	SyncStatusError    = "error"
)

// accountNamespace seeds the deterministic account id derivation so the
// same tenant reconnecting the same address always maps to the same
// account id.
var accountNamespace = uuid.MustParse("8f5f9f4e-1b9c-4b7e-9c61-2d5a7a60c3b1")

// EmailAccount is a mailbox connected by a tenant. Reconnecting the same
// address overwrites the row instead of creating a duplicate.
type EmailAccount struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	TenantID      string     `json:"tenant_id" gorm:"index"`
	Email         string     `json:"email"`
	ConnectedAt   time.Time  `json:"connected_at"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
	IsActive      bool       `json:"is_active"`
	SyncStatus    string     `json:"sync_status"`
	MessagesTotal int64      `json:"messages_total"`
	ThreadsTotal  int64      `json:"threads_total"`
	Signature     string     `json:"signature,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (EmailAccount) TableName() string {
	return "email_accounts"
}

// AccountID derives the stable account id for a mailbox address within a
// tenant. Tenancy is part of the identity: two tenants connecting the same
// address get distinct accounts.
func AccountID(tenantID, address string) string {
	name := tenantID + ":" + strings.ToLower(strings.TrimSpace(address))
	return uuid.NewSHA1(accountNamespace, []byte(name)).String()
}

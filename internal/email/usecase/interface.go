package usecase

import (
	"context"

	emaildomain "crmdesk-backend/internal/email/domain"
)

// EmailUsecase defines the interface for email use cases
type EmailUsecase interface {
	// Sync runs one bounded sync pass over the account's recent messages
	// and returns the matched/unmatched partition.
	Sync(ctx context.Context, tenantID, accountID string, maxResults int64) (*emaildomain.SyncResult, error)

	// Manual linking workflow for undecided candidates.
	LinkToClient(tenantID string, candidate *emaildomain.Candidate, clientID string) (*emaildomain.Email, error)
	LinkPending(tenantID, messageID, clientID string) (*emaildomain.Email, error)
	BulkLinkToClient(tenantID string, candidates []*emaildomain.Candidate, clientID string) *emaildomain.BulkLinkResult
	Discard(tenantID, messageID string)
	ListPending(tenantID string) []*emaildomain.Candidate

	// Read model over the persisted emails.
	GetEmailsForTenant(tenantID string, limit, offset int) ([]*emaildomain.Email, error)
	GetEmailsForClient(tenantID, clientID string) ([]*emaildomain.Email, error)

	// Message actions proxied to the provider.
	MarkRead(ctx context.Context, tenantID, accountID, messageID string, read bool) error
	ToggleStar(ctx context.Context, tenantID, accountID, messageID string) (bool, error)
	SendEmail(ctx context.Context, tenantID, accountID string, msg emaildomain.OutgoingMessage) (string, error)
	DeleteEmail(tenantID, messageID string) error
}

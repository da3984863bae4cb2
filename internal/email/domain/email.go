package domain

import (
	"errors"
	"strings"
	"time"
)

// Sentinel errors surfaced by the sync and linking use cases.
var (
	// ErrMissingToken means no bearer credential is cached for the
	// account; the caller must reconnect the mailbox.
	ErrMissingToken = errors.New("no access token cached for account")

	// ErrAccountNotFound means the tenant has no connected account
	// under the given id.
	ErrAccountNotFound = errors.New("email account not found")

	// ErrSyncInFlight means another sync for the same (tenant, account)
	// pair has not finished yet.
	ErrSyncInFlight = errors.New("sync already in progress for account")

	// ErrCandidateNotFound means the review set holds no candidate for
	// the given message id (already linked, discarded or expired).
	ErrCandidateNotFound = errors.New("candidate not found in review set")
)

// Headers is the fixed set of RFC-2822 headers the engine cares about.
// Absent headers are empty strings.
type Headers struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Cc      string `json:"cc"`
	Bcc     string `json:"bcc"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

// Email is a persisted, client-linked message. A row only exists once the
// message matched at least one client (automatically or by manual linking).
type Email struct {
	MessageID      string     `json:"message_id" gorm:"primaryKey"`
	TenantID       string     `json:"tenant_id" gorm:"primaryKey;index:idx_emails_tenant"`
	ThreadID       string     `json:"thread_id"`
	AccountID      string     `json:"account_id" gorm:"index"`
	From           string     `json:"from"`
	To             string     `json:"to"`
	Cc             string     `json:"cc,omitempty"`
	Bcc            string     `json:"bcc,omitempty"`
	Subject        string     `json:"subject"`
	Snippet        string     `json:"snippet"`
	Body           string     `json:"body"`
	IsHTML         bool       `json:"is_html"`
	ReceivedAt     time.Time  `json:"received_at"`
	Labels         string     `json:"labels"` // comma-joined provider label ids
	IsRead         bool       `json:"is_read"`
	IsStarred      bool       `json:"is_starred"`
	ClientIDs      []string   `json:"client_ids" gorm:"-"`
	MatchedAt      *time.Time `json:"matched_at,omitempty"`
	ManuallyLinked bool       `json:"manually_linked"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Email) TableName() string {
	return "emails"
}

// EmailClientLink joins a persisted email to one matched client. The link
// rows are rewritten atomically with every upsert of the owning email.
type EmailClientLink struct {
	TenantID  string `gorm:"primaryKey;index:idx_links_client"`
	MessageID string `gorm:"primaryKey"`
	ClientID  string `gorm:"primaryKey;index:idx_links_client"`
}

func (EmailClientLink) TableName() string {
	return "email_client_links"
}

// Candidate is a fetched and decoded message that has not been persisted.
// It lives only inside one sync result and the review session that follows;
// discarding it leaves no trace.
type Candidate struct {
	MessageID    string    `json:"message_id"`
	ThreadID     string    `json:"thread_id"`
	AccountID    string    `json:"account_id"`
	Headers      Headers   `json:"headers"`
	Snippet      string    `json:"snippet"`
	Body         string    `json:"body"`
	IsHTML       bool      `json:"is_html"`
	ReceivedAt   time.Time `json:"received_at"`
	Labels       []string  `json:"labels"`
	Participants []string  `json:"participants"` // every address across From/To/Cc/Bcc, lower-cased, deduped
}

// Email converts the candidate into a persistable record linked to the
// given clients. matchedAt stamps when the association was established.
func (c *Candidate) Email(tenantID string, clientIDs []string, matchedAt time.Time, manual bool) *Email {
	return &Email{
		MessageID:      c.MessageID,
		TenantID:       tenantID,
		ThreadID:       c.ThreadID,
		AccountID:      c.AccountID,
		From:           c.Headers.From,
		To:             c.Headers.To,
		Cc:             c.Headers.Cc,
		Bcc:            c.Headers.Bcc,
		Subject:        c.Headers.Subject,
		Snippet:        c.Snippet,
		Body:           c.Body,
		IsHTML:         c.IsHTML,
		ReceivedAt:     c.ReceivedAt,
		Labels:         strings.Join(c.Labels, ","),
		IsRead:         !hasLabel(c.Labels, "UNREAD"),
		IsStarred:      hasLabel(c.Labels, "STARRED"),
		ClientIDs:      clientIDs,
		MatchedAt:      &matchedAt,
		ManuallyLinked: manual,
	}
}

func hasLabel(labels []string, labelID string) bool {
	for _, label := range labels {
		if label == labelID {
			return true
		}
	}
	return false
}

// SyncResult is the partition produced by one bounded sync pass.
// TotalSynced counts every message id considered, including the ones
// skipped after a per-message failure.
type SyncResult struct {
	Matched     []*Email     `json:"matched"`
	Unmatched   []*Candidate `json:"unmatched"`
	TotalSynced int          `json:"total_synced"`
}

// BulkLinkResult reports partial-success semantics for bulk linking:
// committed links stay committed even when later items fail.
type BulkLinkResult struct {
	Linked []*Email        `json:"linked"`
	Failed []BulkLinkError `json:"failed,omitempty"`
}

type BulkLinkError struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

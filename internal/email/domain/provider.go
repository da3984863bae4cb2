package domain

import "context"

// Profile is the connected mailbox's identity as reported by the provider.
type Profile struct {
	EmailAddress  string `json:"email_address"`
	MessagesTotal int64  `json:"messages_total"`
	ThreadsTotal  int64  `json:"threads_total"`
}

// Signature is the primary send-as identity of the mailbox.
type Signature struct {
	Signature   string `json:"signature"`
	DisplayName string `json:"display_name"`
	ReplyTo     string `json:"reply_to"`
}

// OutgoingMessage is a message to be sent through the provider.
type OutgoingMessage struct {
	To       []string `json:"to"`
	Cc       []string `json:"cc,omitempty"`
	Bcc      []string `json:"bcc,omitempty"`
	Subject  string   `json:"subject"`
	HTMLBody string   `json:"html_body"`
	ThreadID string   `json:"thread_id,omitempty"`
}

// MailProvider abstracts the hosted mailbox API. Every call requires the
// caller's bearer token; a missing or rejected credential fails the call,
// it is never retried here.
type MailProvider interface {
	// ListMessageIDs returns up to maxResults most recent message ids and
	// the continuation token for the next page, empty when exhausted.
	ListMessageIDs(ctx context.Context, token string, maxResults int64) ([]string, string, error)

	// FetchMessage retrieves one message in full, decodes its body and
	// extracts the participant address set.
	FetchMessage(ctx context.Context, token, messageID string) (*Candidate, error)

	// SendMessage sends a message and returns the provider-assigned id.
	SendMessage(ctx context.Context, token string, msg OutgoingMessage) (string, error)

	// ModifyLabels adds and removes provider labels on a message.
	ModifyLabels(ctx context.Context, token, messageID string, add, remove []string) error

	// GetProfile returns the mailbox profile for the token's owner.
	GetProfile(ctx context.Context, token string) (*Profile, error)

	// GetSignature returns the primary send-as signature settings.
	GetSignature(ctx context.Context, token string) (*Signature, error)
}

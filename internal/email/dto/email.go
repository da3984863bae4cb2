package dto

import (
	emaildomain "crmdesk-backend/internal/email/domain"
)

type SyncRequest struct {
	MaxResults int64 `json:"max_results"`
}

type SyncResponse struct {
	Matched     []*emaildomain.Email     `json:"matched"`
	Unmatched   []*emaildomain.Candidate `json:"unmatched"`
	TotalSynced int                      `json:"total_synced"`
}

// LinkRequest links one candidate to a client. Either the message id of a
// candidate still in the review set, or the full candidate payload, must
// be provided.
type LinkRequest struct {
	MessageID string                 `json:"message_id"`
	Candidate *emaildomain.Candidate `json:"candidate"`
	ClientID  string                 `json:"client_id" binding:"required"`
}

type BulkLinkRequest struct {
	Candidates []*emaildomain.Candidate `json:"candidates" binding:"required"`
	ClientID   string                   `json:"client_id" binding:"required"`
}

type DiscardRequest struct {
	MessageID string `json:"message_id" binding:"required"`
}

type EmailsResponse struct {
	Emails []*emaildomain.Email `json:"emails"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

type CandidatesResponse struct {
	Candidates []*emaildomain.Candidate `json:"candidates"`
}

type SendEmailRequest struct {
	AccountID string   `json:"account_id" binding:"required"`
	To        []string `json:"to" binding:"required"`
	Cc        []string `json:"cc"`
	Bcc       []string `json:"bcc"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	ThreadID  string   `json:"thread_id"`
}

package usecase

import (
	"fmt"
	"time"

	emaildomain "crmdesk-backend/internal/email/domain"
)

// LinkToClient promotes an undecided candidate into a persisted email
// linked to one client. The record is flagged as manually linked.
func (u *emailUsecase) LinkToClient(tenantID string, candidate *emaildomain.Candidate, clientID string) (*emaildomain.Email, error) {
	if candidate == nil || candidate.MessageID == "" {
		return nil, fmt.Errorf("candidate is missing a message id")
	}

	client, err := u.matcher.clientRepo.FindByID(tenantID, clientID)
	if err != nil {
		return nil, fmt.Errorf("resolving client %s: %w", clientID, err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %s not found", clientID)
	}

	email := candidate.Email(tenantID, []string{clientID}, time.Now(), true)
	if err := u.emailRepo.Upsert(email); err != nil {
		return nil, fmt.Errorf("persisting linked email %s: %w", candidate.MessageID, err)
	}

	// Linked: the candidate leaves the review set for good.
	u.takeCandidate(tenantID, candidate.MessageID)

	return email, nil
}

// LinkPending links a candidate that is still parked in the review set,
// addressed by message id.
func (u *emailUsecase) LinkPending(tenantID, messageID, clientID string) (*emaildomain.Email, error) {
	candidate, ok := u.takeCandidate(tenantID, messageID)
	if !ok {
		return nil, emaildomain.ErrCandidateNotFound
	}

	email, err := u.LinkToClient(tenantID, candidate, clientID)
	if err != nil {
		// Put it back so the user can retry or discard.
		u.parkCandidate(tenantID, candidate)
		return nil, err
	}
	return email, nil
}

// BulkLinkToClient applies LinkToClient to each candidate independently.
// Failures are collected and reported; earlier successes stay committed.
func (u *emailUsecase) BulkLinkToClient(tenantID string, candidates []*emaildomain.Candidate, clientID string) *emaildomain.BulkLinkResult {
	result := &emaildomain.BulkLinkResult{
		Linked: []*emaildomain.Email{},
	}

	for _, candidate := range candidates {
		email, err := u.LinkToClient(tenantID, candidate, clientID)
		if err != nil {
			messageID := ""
			if candidate != nil {
				messageID = candidate.MessageID
			}
			result.Failed = append(result.Failed, emaildomain.BulkLinkError{
				MessageID: messageID,
				Error:     err.Error(),
			})
			continue
		}
		result.Linked = append(result.Linked, email)
	}

	return result
}

// Discard drops a candidate from the review set. Nothing was ever
// persisted for it, and nothing ever will be: the message is forgotten.
func (u *emailUsecase) Discard(tenantID, messageID string) {
	u.takeCandidate(tenantID, messageID)
}

// ListPending returns the tenant's candidates still awaiting a decision.
func (u *emailUsecase) ListPending(tenantID string) []*emaildomain.Candidate {
	u.pendingMu.Lock()
	defer u.pendingMu.Unlock()

	candidates := make([]*emaildomain.Candidate, 0, len(u.pending[tenantID]))
	for _, candidate := range u.pending[tenantID] {
		candidates = append(candidates, candidate)
	}
	return candidates
}

package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	accountdomain "crmdesk-backend/internal/account/domain"
	accountrepo "crmdesk-backend/internal/account/repository"
	emaildomain "crmdesk-backend/internal/email/domain"
	"crmdesk-backend/internal/email/repository"
	"crmdesk-backend/pkg/tokencache"
)

// emailUsecase implements EmailUsecase interface
type emailUsecase struct {
	emailRepo   repository.EmailRepository
	accountRepo accountrepo.AccountRepository
	matcher     *ClientMatcher
	provider    emaildomain.MailProvider
	tokens      tokencache.SecretCache

	// pending holds undecided candidates between a sync pass and the
	// review session that follows. Nothing in here ever reaches the
	// store unless explicitly linked.
	pending   map[string]map[string]*emaildomain.Candidate // tenantID -> messageID -> candidate
	pendingMu sync.Mutex

	// leases enforces at most one in-flight sync per (tenant, account).
	leases   map[string]struct{}
	leasesMu sync.Mutex
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(emailRepo repository.EmailRepository, accountRepo accountrepo.AccountRepository, matcher *ClientMatcher, provider emaildomain.MailProvider, tokens tokencache.SecretCache) EmailUsecase {
	return &emailUsecase{
		emailRepo:   emailRepo,
		accountRepo: accountRepo,
		matcher:     matcher,
		provider:    provider,
		tokens:      tokens,
		pending:     make(map[string]map[string]*emaildomain.Candidate),
		leases:      make(map[string]struct{}),
	}
}

// itemOutcome is the per-message disposition accumulated during a pass and
// folded once into the final partition.
type itemOutcome struct {
	matched   *emaildomain.Email
	unmatched *emaildomain.Candidate
	skipped   bool
}

// Sync runs one bounded pass over the account's most recent messages:
// list, fetch, decode, match, partition, persist the matched subset.
//
// A failure on a single message is logged and that message is skipped; the
// batch always runs to completion. Only a failure to authenticate or to
// list the window aborts the pass.
func (u *emailUsecase) Sync(ctx context.Context, tenantID, accountID string, maxResults int64) (*emaildomain.SyncResult, error) {
	if !u.acquireLease(tenantID, accountID) {
		return nil, emaildomain.ErrSyncInFlight
	}
	defer u.releaseLease(tenantID, accountID)

	account, err := u.accountRepo.FindByID(tenantID, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, emaildomain.ErrAccountNotFound
	}

	token, ok := u.tokens.Get(tenantID, accountID)
	if !ok {
		u.setSyncStatus(tenantID, accountID, accountdomain.SyncStatusError, nil)
		return nil, emaildomain.ErrMissingToken
	}

	// Each pass re-lists from the newest message; the continuation token
	// is not carried across calls.
	ids, _, err := u.provider.ListMessageIDs(ctx, token, maxResults)
	if err != nil {
		u.setSyncStatus(tenantID, accountID, accountdomain.SyncStatusError, nil)
		return nil, fmt.Errorf("listing messages for account %s: %w", accountID, err)
	}

	now := time.Now()
	outcomes := make([]itemOutcome, 0, len(ids))
	for _, messageID := range ids {
		outcomes = append(outcomes, u.syncOne(ctx, tenantID, accountID, token, messageID, now))
	}

	result := &emaildomain.SyncResult{
		Matched:     []*emaildomain.Email{},
		Unmatched:   []*emaildomain.Candidate{},
		TotalSynced: len(ids),
	}
	for _, outcome := range outcomes {
		switch {
		case outcome.matched != nil:
			result.Matched = append(result.Matched, outcome.matched)
		case outcome.unmatched != nil:
			result.Unmatched = append(result.Unmatched, outcome.unmatched)
			u.parkCandidate(tenantID, outcome.unmatched)
		}
	}

	// A pass that matched nothing is still a successful pass.
	u.setSyncStatus(tenantID, accountID, accountdomain.SyncStatusActive, &now)

	return result, nil
}

// syncOne fetches, decodes and matches a single message. Every failure in
// here is contained: the message is skipped and the pass continues.
func (u *emailUsecase) syncOne(ctx context.Context, tenantID, accountID, token, messageID string, matchedAt time.Time) itemOutcome {
	candidate, err := u.provider.FetchMessage(ctx, token, messageID)
	if err != nil {
		log.Printf("[Sync] skipping message %s: %v", messageID, err)
		return itemOutcome{skipped: true}
	}
	candidate.AccountID = accountID

	clientIDs := u.matcher.Match(tenantID, candidate.Participants)
	if len(clientIDs) == 0 {
		return itemOutcome{unmatched: candidate}
	}

	email := candidate.Email(tenantID, clientIDs, matchedAt, false)
	if err := u.emailRepo.Upsert(email); err != nil {
		// Dropped from this pass; the message stays inside the recency
		// window and is retried on the next sync.
		log.Printf("[Sync] failed to persist message %s: %v", messageID, err)
		return itemOutcome{skipped: true}
	}

	return itemOutcome{matched: email}
}

func (u *emailUsecase) setSyncStatus(tenantID, accountID, status string, lastSyncAt *time.Time) {
	if err := u.accountRepo.SetSyncStatus(tenantID, accountID, status, lastSyncAt); err != nil {
		log.Printf("[Sync] failed to update sync status for account %s: %v", accountID, err)
	}
}

func leaseKey(tenantID, accountID string) string {
	return tenantID + ":" + accountID
}

func (u *emailUsecase) acquireLease(tenantID, accountID string) bool {
	u.leasesMu.Lock()
	defer u.leasesMu.Unlock()
	key := leaseKey(tenantID, accountID)
	if _, held := u.leases[key]; held {
		return false
	}
	u.leases[key] = struct{}{}
	return true
}

func (u *emailUsecase) releaseLease(tenantID, accountID string) {
	u.leasesMu.Lock()
	defer u.leasesMu.Unlock()
	delete(u.leases, leaseKey(tenantID, accountID))
}

func (u *emailUsecase) parkCandidate(tenantID string, candidate *emaildomain.Candidate) {
	u.pendingMu.Lock()
	defer u.pendingMu.Unlock()
	if u.pending[tenantID] == nil {
		u.pending[tenantID] = make(map[string]*emaildomain.Candidate)
	}
	u.pending[tenantID][candidate.MessageID] = candidate
}

func (u *emailUsecase) takeCandidate(tenantID, messageID string) (*emaildomain.Candidate, bool) {
	u.pendingMu.Lock()
	defer u.pendingMu.Unlock()
	candidate, ok := u.pending[tenantID][messageID]
	if ok {
		delete(u.pending[tenantID], messageID)
	}
	return candidate, ok
}

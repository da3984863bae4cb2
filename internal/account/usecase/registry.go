package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	accountdomain "crmdesk-backend/internal/account/domain"
	"crmdesk-backend/internal/account/repository"
	emaildomain "crmdesk-backend/internal/email/domain"
	"crmdesk-backend/pkg/tokencache"
)

// AccountUsecase defines the interface for the account registry
type AccountUsecase interface {
	// Connect registers the mailbox behind the token for the tenant.
	// Reconnecting the same address overwrites the existing record.
	Connect(ctx context.Context, tenantID, accessToken string) (*accountdomain.EmailAccount, error)

	// List returns the tenant's connected accounts.
	List(tenantID string) ([]*accountdomain.EmailAccount, error)

	// Disconnect deletes the account record and evicts its token.
	// Emails persisted under the account survive: history outlives the
	// connection.
	Disconnect(tenantID, accountID string) error

	// GetSignature fetches the current send-as signature for the account.
	GetSignature(ctx context.Context, tenantID, accountID string) (*emaildomain.Signature, error)
}

// accountUsecase implements AccountUsecase interface
type accountUsecase struct {
	accountRepo repository.AccountRepository
	provider    emaildomain.MailProvider
	tokens      tokencache.SecretCache
}

// NewAccountUsecase creates a new instance of accountUsecase
func NewAccountUsecase(accountRepo repository.AccountRepository, provider emaildomain.MailProvider, tokens tokencache.SecretCache) AccountUsecase {
	return &accountUsecase{
		accountRepo: accountRepo,
		provider:    provider,
		tokens:      tokens,
	}
}

func (u *accountUsecase) Connect(ctx context.Context, tenantID, accessToken string) (*accountdomain.EmailAccount, error) {
	profile, err := u.provider.GetProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("fetching mailbox profile: %w", err)
	}

	account := &accountdomain.EmailAccount{
		ID:            accountdomain.AccountID(tenantID, profile.EmailAddress),
		TenantID:      tenantID,
		Email:         profile.EmailAddress,
		ConnectedAt:   time.Now(),
		IsActive:      true,
		SyncStatus:    accountdomain.SyncStatusPending,
		MessagesTotal: profile.MessagesTotal,
		ThreadsTotal:  profile.ThreadsTotal,
	}

	// Signature is cosmetic; a failure here must not block the connect.
	if sig, err := u.provider.GetSignature(ctx, accessToken); err != nil {
		log.Printf("[Accounts] could not fetch signature for %s: %v", profile.EmailAddress, err)
	} else {
		account.Signature = sig.Signature
	}

	if err := u.accountRepo.Upsert(account); err != nil {
		return nil, fmt.Errorf("saving account %s: %w", account.ID, err)
	}

	u.tokens.Set(tenantID, account.ID, accessToken)

	return account, nil
}

func (u *accountUsecase) List(tenantID string) ([]*accountdomain.EmailAccount, error) {
	return u.accountRepo.ListByTenant(tenantID)
}

func (u *accountUsecase) Disconnect(tenantID, accountID string) error {
	account, err := u.accountRepo.FindByID(tenantID, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return emaildomain.ErrAccountNotFound
	}

	if err := u.accountRepo.Delete(tenantID, accountID); err != nil {
		return err
	}
	u.tokens.Remove(tenantID, accountID)
	return nil
}

func (u *accountUsecase) GetSignature(ctx context.Context, tenantID, accountID string) (*emaildomain.Signature, error) {
	token, ok := u.tokens.Get(tenantID, accountID)
	if !ok {
		return nil, emaildomain.ErrMissingToken
	}
	return u.provider.GetSignature(ctx, token)
}

package usecase

import (
	"context"
	"fmt"

	emaildomain "crmdesk-backend/internal/email/domain"
)

func (u *emailUsecase) GetEmailsForTenant(tenantID string, limit, offset int) ([]*emaildomain.Email, error) {
	return u.emailRepo.ListByTenant(tenantID, limit, offset)
}

func (u *emailUsecase) GetEmailsForClient(tenantID, clientID string) ([]*emaildomain.Email, error) {
	return u.emailRepo.ListByClient(tenantID, clientID)
}

// MarkRead flips the read flag at the provider and mirrors it on the
// stored row when the message was persisted.
func (u *emailUsecase) MarkRead(ctx context.Context, tenantID, accountID, messageID string, read bool) error {
	token, ok := u.tokens.Get(tenantID, accountID)
	if !ok {
		return emaildomain.ErrMissingToken
	}

	var err error
	if read {
		err = u.provider.ModifyLabels(ctx, token, messageID, nil, []string{"UNREAD"})
	} else {
		err = u.provider.ModifyLabels(ctx, token, messageID, []string{"UNREAD"}, nil)
	}
	if err != nil {
		return err
	}

	return u.mirrorFlags(tenantID, messageID, func(email *emaildomain.Email) {
		email.IsRead = read
	})
}

// ToggleStar flips the star flag at the provider and mirrors it locally.
// Returns the new starred state.
func (u *emailUsecase) ToggleStar(ctx context.Context, tenantID, accountID, messageID string) (bool, error) {
	token, ok := u.tokens.Get(tenantID, accountID)
	if !ok {
		return false, emaildomain.ErrMissingToken
	}

	stored, err := u.emailRepo.FindByMessageID(tenantID, messageID)
	if err != nil {
		return false, err
	}

	starred := stored != nil && stored.IsStarred
	if starred {
		err = u.provider.ModifyLabels(ctx, token, messageID, nil, []string{"STARRED"})
	} else {
		err = u.provider.ModifyLabels(ctx, token, messageID, []string{"STARRED"}, nil)
	}
	if err != nil {
		return starred, err
	}

	err = u.mirrorFlags(tenantID, messageID, func(email *emaildomain.Email) {
		email.IsStarred = !starred
	})
	return !starred, err
}

// SendEmail sends a message from the connected account through the
// provider.
func (u *emailUsecase) SendEmail(ctx context.Context, tenantID, accountID string, msg emaildomain.OutgoingMessage) (string, error) {
	token, ok := u.tokens.Get(tenantID, accountID)
	if !ok {
		return "", emaildomain.ErrMissingToken
	}

	id, err := u.provider.SendMessage(ctx, token, msg)
	if err != nil {
		return "", fmt.Errorf("sending message: %w", err)
	}
	return id, nil
}

// DeleteEmail removes a persisted email. This is an explicit user action,
// separate from sync and disconnect, and only touches the local store.
func (u *emailUsecase) DeleteEmail(tenantID, messageID string) error {
	return u.emailRepo.Delete(tenantID, messageID)
}

func (u *emailUsecase) mirrorFlags(tenantID, messageID string, mutate func(*emaildomain.Email)) error {
	stored, err := u.emailRepo.FindByMessageID(tenantID, messageID)
	if err != nil {
		return err
	}
	if stored == nil {
		// Not persisted (unmatched or discarded); provider state is the
		// only state.
		return nil
	}

	mutate(stored)
	return u.emailRepo.UpdateFlags(tenantID, messageID, stored.IsRead, stored.IsStarred)
}

package usecase

import (
	"context"
	"testing"

	emaildomain "crmdesk-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadMirrorsPersistedFlag(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "t1", "a1")
	env.addClient(t, "t1", "c1", "joao@example.com")
	env.addMessage("m1", "joao@example.com", "agent@myagency.com")

	_, err := env.uc.Sync(context.Background(), "t1", "a1", 50)
	require.NoError(t, err)

	require.NoError(t, env.uc.MarkRead(context.Background(), "t1", "a1", "m1", true))

	stored, err := env.emails.FindByMessageID("t1", "m1")
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
}

func TestMarkReadOnUnpersistedMessage(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "t1", "a1")

	// No stored row: the provider still gets the label change and the
	// call succeeds.
	err := env.uc.MarkRead(context.Background(), "t1", "a1", "never-stored", true)
	assert.NoError(t, err)
}

func TestToggleStar(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "t1", "a1")
	env.addClient(t, "t1", "c1", "joao@example.com")
	env.addMessage("m1", "joao@example.com", "agent@myagency.com")

	_, err := env.uc.Sync(context.Background(), "t1", "a1", 50)
	require.NoError(t, err)

	starred, err := env.uc.ToggleStar(context.Background(), "t1", "a1", "m1")
	require.NoError(t, err)
	assert.True(t, starred)

	starred, err = env.uc.ToggleStar(context.Background(), "t1", "a1", "m1")
	require.NoError(t, err)
	assert.False(t, starred)
}

func TestSendEmailRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.SendEmail(context.Background(), "t1", "a1", emaildomain.OutgoingMessage{
		To:      []string{"joao@example.com"},
		Subject: "hello",
	})
	assert.ErrorIs(t, err, emaildomain.ErrMissingToken)
}

func TestDeleteEmailIsExplicit(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "t1", "a1")
	env.addClient(t, "t1", "c1", "joao@example.com")
	env.addMessage("m1", "joao@example.com", "agent@myagency.com")

	_, err := env.uc.Sync(context.Background(), "t1", "a1", 50)
	require.NoError(t, err)

	require.NoError(t, env.uc.DeleteEmail("t1", "m1"))

	stored, err := env.emails.FindByMessageID("t1", "m1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

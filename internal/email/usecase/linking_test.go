package usecase

import (
	"context"
	"testing"
	"time"

	emaildomain "crmdesk-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingCandidate(id string) *emaildomain.Candidate {
	return &emaildomain.Candidate{
		MessageID: id,
		Headers: emaildomain.Headers{
			From: "stranger@elsewhere.com",
			To:   "agent@myagency.com",
		},
		Body:         "body",
		ReceivedAt:   time.Now(),
		Participants: []string{"stranger@elsewhere.com", "agent@myagency.com"},
	}
}

func TestLinkToClientPromotesCandidate(t *testing.T) {
	env := newTestEnv(t)
	env.addClient(t, "t1", "c1", "joao@example.com")

	email, err := env.uc.LinkToClient("t1", pendingCandidate("m1"), "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{"c1"}, email.ClientIDs)
	assert.True(t, email.ManuallyLinked)
	require.NotNil(t, email.MatchedAt)

	stored, err := env.emails.FindByMessageID("t1", "m1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.ManuallyLinked)
	assert.Equal(t, []string{"c1"}, stored.ClientIDs)
}

func TestLinkToClientUnknownClient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.LinkToClient("t1", pendingCandidate("m1"), "ghost")
	require.Error(t, err)

	stored, ferr := env.emails.FindByMessageID("t1", "m1")
	require.NoError(t, ferr)
	assert.Nil(t, stored)
}

func TestLinkPendingUsesReviewSet(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "t1", "a1")
	env.addClient(t, "t1", "c1", "joao@example.com")
	env.addMessage("m1", "stranger@elsewhere.com", "agent@myagency.com")

	_, err := env.uc.Sync(context.Background(), "t1", "a1", 50)
	require.NoError(t, err)
	require.Len(t, env.uc.ListPending("t1"), 1)

	email, err := env.uc.LinkPending("t1", "m1", "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, email.ClientIDs)
	assert.Equal(t, "a1", email.AccountID)

	// Linked candidates leave the review set.
	assert.Empty(t, env.uc.ListPending("t1"))
}

func TestLinkPendingUnknownMessage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.LinkPending("t1", "never-synced", "c1")
	assert.ErrorIs(t, err, emaildomain.ErrCandidateNotFound)
}

func TestLinkPendingFailureKeepsCandidate(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "t1", "a1")
	env.addMessage("m1", "stranger@elsewhere.com", "agent@myagency.com")

	_, err := env.uc.Sync(context.Background(), "t1", "a1", 50)
	require.NoError(t, err)

	// Linking to an unknown client fails; the candidate must stay
	// reviewable.
	_, err = env.uc.LinkPending("t1", "m1", "ghost")
	require.Error(t, err)
	assert.Len(t, env.uc.ListPending("t1"), 1)
}

func TestBulkLinkPartialSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.addClient(t, "t1", "c1", "joao@example.com")

	good := pendingCandidate("m1")
	alsoGood := pendingCandidate("m2")
	bad := pendingCandidate("") // empty message id fails the upsert

	result := env.uc.BulkLinkToClient("t1", []*emaildomain.Candidate{good, bad, alsoGood}, "c1")

	assert.Len(t, result.Linked, 2)
	require.Len(t, result.Failed, 1)

	// Successes before and after the failure stay committed.
	stored, err := env.emails.FindByMessageID("t1", "m2")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestBulkLinkTolerateNilCandidate(t *testing.T) {
	env := newTestEnv(t)
	env.addClient(t, "t1", "c1", "joao@example.com")

	// A null element in the request body binds to a nil candidate.
	result := env.uc.BulkLinkToClient("t1", []*emaildomain.Candidate{nil, pendingCandidate("m1")}, "c1")

	assert.Len(t, result.Linked, 1)
	require.Len(t, result.Failed, 1)
	assert.Empty(t, result.Failed[0].MessageID)
}

func TestDiscardLeavesNoRecord(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "t1", "a1")
	env.addMessage("m1", "stranger@elsewhere.com", "agent@myagency.com")

	_, err := env.uc.Sync(context.Background(), "t1", "a1", 50)
	require.NoError(t, err)

	env.uc.Discard("t1", "m1")

	assert.Empty(t, env.uc.ListPending("t1"))
	stored, err := env.emails.FindByMessageID("t1", "m1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Discard is terminal for the review session; linking afterwards
	// finds nothing.
	_, err = env.uc.LinkPending("t1", "m1", "c1")
	assert.ErrorIs(t, err, emaildomain.ErrCandidateNotFound)
}

func TestEndToEndMatchExample(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "t1", "a1")
	env.addClient(t, "t1", "c1", "joao@example.com")
	env.addMessage("m-joao", "João <joao@example.com>", "agent@myagency.com")

	result, err := env.uc.Sync(context.Background(), "t1", "a1", 50)
	require.NoError(t, err)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, []string{"c1"}, result.Matched[0].ClientIDs)

	emails, err := env.uc.GetEmailsForClient("t1", "c1")
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "m-joao", emails[0].MessageID)
}

package gmail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	emaildomain "crmdesk-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	gmailapi "google.golang.org/api/gmail/v1"
)

// newFakeProvider spins up a fake mailbox API and returns a Service wired
// to it.
func newFakeProvider(t *testing.T, mux *http.ServeMux) *Service {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewService("client-id", "client-secret", option.WithEndpoint(server.URL))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

func TestListMessageIDs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("maxResults"))
		writeJSON(w, &gmailapi.ListMessagesResponse{
			Messages:      []*gmailapi.Message{{Id: "m1"}, {Id: "m2"}, {Id: "m3"}},
			NextPageToken: "page-2",
		})
	})

	svc := newFakeProvider(t, mux)

	ids, nextPage, err := svc.ListMessageIDs(context.Background(), "token", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m3"}, ids)
	assert.Equal(t, "page-2", nextPage)
}

func TestListMessageIDsRequiresToken(t *testing.T) {
	svc := NewService("client-id", "client-secret")

	_, _, err := svc.ListMessageIDs(context.Background(), "", 5)
	assert.ErrorIs(t, err, emaildomain.ErrMissingToken)
}

func TestListMessageIDsProviderError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "invalid credentials")
	})

	svc := newFakeProvider(t, mux)

	_, _, err := svc.ListMessageIDs(context.Background(), "bad-token", 5)
	require.Error(t, err)

	var ierr *IntegrationError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, http.StatusUnauthorized, ierr.StatusCode)
	assert.Contains(t, ierr.Message, "invalid credentials")
}

func TestFetchMessageDecodesCandidate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages/m1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "full", r.URL.Query().Get("format"))
		writeJSON(w, &gmailapi.Message{
			Id:           "m1",
			ThreadId:     "t1",
			LabelIds:     []string{"INBOX", "UNREAD"},
			Snippet:      "provider snippet",
			InternalDate: 1577880000000, // 2020-01-01 12:00:00 UTC in ms
			Payload: &gmailapi.MessagePart{
				MimeType: "multipart/alternative",
				Headers: []*gmailapi.MessagePartHeader{
					{Name: "From", Value: "João <joao@example.com>"},
					{Name: "To", Value: "agent@myagency.com"},
					{Name: "Subject", Value: "Proposta"},
				},
				Parts: []*gmailapi.MessagePart{
					{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: b64("plain")}},
					{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: b64("<p>olá</p>")}},
				},
			},
		})
	})

	svc := newFakeProvider(t, mux)

	candidate, err := svc.FetchMessage(context.Background(), "token", "m1")
	require.NoError(t, err)

	assert.Equal(t, "m1", candidate.MessageID)
	assert.Equal(t, "t1", candidate.ThreadID)
	assert.Equal(t, "João <joao@example.com>", candidate.Headers.From)
	assert.Equal(t, "Proposta", candidate.Headers.Subject)
	assert.Equal(t, "<p>olá</p>", candidate.Body)
	assert.True(t, candidate.IsHTML)
	assert.Equal(t, "provider snippet", candidate.Snippet)
	assert.Equal(t, []string{"joao@example.com", "agent@myagency.com"}, candidate.Participants)
	assert.Equal(t, int64(1577880000), candidate.ReceivedAt.Unix())
}

func TestGetProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &gmailapi.Profile{
			EmailAddress:  "agent@myagency.com",
			MessagesTotal: 1234,
			ThreadsTotal:  567,
		})
	})

	svc := newFakeProvider(t, mux)

	profile, err := svc.GetProfile(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "agent@myagency.com", profile.EmailAddress)
	assert.Equal(t, int64(1234), profile.MessagesTotal)
	assert.Equal(t, int64(567), profile.ThreadsTotal)
}

func TestGetSignaturePicksPrimary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/settings/sendAs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &gmailapi.ListSendAsResponse{
			SendAs: []*gmailapi.SendAs{
				{SendAsEmail: "alias@myagency.com", Signature: "alias sig"},
				{SendAsEmail: "agent@myagency.com", IsPrimary: true, Signature: "<b>Agent</b>", DisplayName: "Agent", ReplyToAddress: "reply@myagency.com"},
			},
		})
	})

	svc := newFakeProvider(t, mux)

	sig, err := svc.GetSignature(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "<b>Agent</b>", sig.Signature)
	assert.Equal(t, "Agent", sig.DisplayName)
	assert.Equal(t, "reply@myagency.com", sig.ReplyTo)
}

func TestSendMessage(t *testing.T) {
	var rawReceived string
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages/send", func(w http.ResponseWriter, r *http.Request) {
		var msg gmailapi.Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		rawReceived = msg.Raw
		assert.Equal(t, "thread-1", msg.ThreadId)
		writeJSON(w, &gmailapi.Message{Id: "sent-1"})
	})

	svc := newFakeProvider(t, mux)

	id, err := svc.SendMessage(context.Background(), "token", emaildomain.OutgoingMessage{
		To:       []string{"joao@example.com"},
		Subject:  "Proposta",
		HTMLBody: "<p>olá</p>",
		ThreadID: "thread-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sent-1", id)
	assert.NotEmpty(t, rawReceived)
}

func TestModifyLabels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages/m1/modify", func(w http.ResponseWriter, r *http.Request) {
		var req gmailapi.ModifyMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"STARRED"}, req.AddLabelIds)
		assert.Equal(t, []string{"UNREAD"}, req.RemoveLabelIds)
		writeJSON(w, &gmailapi.Message{Id: "m1"})
	})

	svc := newFakeProvider(t, mux)

	err := svc.ModifyLabels(context.Background(), "token", "m1", []string{"STARRED"}, []string{"UNREAD"})
	require.NoError(t, err)
}

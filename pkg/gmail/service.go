package gmail

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	emaildomain "crmdesk-backend/internal/email/domain"

	"github.com/jordan-wright/email"
	"github.com/k3a/html2text"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	gmailapi "google.golang.org/api/gmail/v1"
)

const (
	// maxResultsCeiling is the provider's documented per-request maximum.
	maxResultsCeiling = 500

	snippetLength = 200
)

// Service is a thin client over the hosted mailbox REST API. A bearer
// credential is required on every call; the service itself holds no
// per-account state, so one instance serves all tenants.
type Service struct {
	clientID     string
	clientSecret string
	opts         []option.ClientOption
}

// NewService creates the mailbox client. Extra options are forwarded to
// the underlying API client (tests use option.WithEndpoint to point at a
// fake server).
func NewService(clientID, clientSecret string, opts ...option.ClientOption) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		opts:         opts,
	}
}

// newClient builds an API client bound to the caller's bearer token.
func (s *Service) newClient(ctx context.Context, accessToken string) (*gmailapi.Service, error) {
	if accessToken == "" {
		return nil, emaildomain.ErrMissingToken
	}

	token := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, s.opts...)
	srv, err := gmailapi.NewService(ctx, opts...)
	if err != nil {
		return nil, wrapError("new client", err)
	}
	return srv, nil
}

// ListMessageIDs returns up to maxResults most recent message ids in the
// provider's own ordering (newest first), plus the continuation token for
// the next page, empty when the listing is exhausted.
func (s *Service) ListMessageIDs(ctx context.Context, token string, maxResults int64) ([]string, string, error) {
	srv, err := s.newClient(ctx, token)
	if err != nil {
		return nil, "", err
	}

	if maxResults <= 0 {
		maxResults = 20
	}
	if maxResults > maxResultsCeiling {
		maxResults = maxResultsCeiling
	}

	resp, err := srv.Users.Messages.List("me").MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, "", wrapError("list messages", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, resp.NextPageToken, nil
}

// FetchMessage retrieves a single message in full format and decodes it
// into a candidate: typed headers, body text, snippet and the complete
// participant address set.
func (s *Service) FetchMessage(ctx context.Context, token, messageID string) (*emaildomain.Candidate, error) {
	srv, err := s.newClient(ctx, token)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, wrapError("get message", err)
	}

	return convertMessage(msg), nil
}

// SendMessage sends a message through the provider and returns the
// provider-assigned message id.
func (s *Service) SendMessage(ctx context.Context, token string, out emaildomain.OutgoingMessage) (string, error) {
	srv, err := s.newClient(ctx, token)
	if err != nil {
		return "", err
	}

	e := email.NewEmail()
	e.To = out.To
	e.Cc = out.Cc
	e.Bcc = out.Bcc
	e.Subject = out.Subject
	e.HTML = []byte(out.HTMLBody)

	raw, err := e.Bytes()
	if err != nil {
		return "", wrapError("build message", err)
	}

	msg := &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}
	if out.ThreadID != "" {
		msg.ThreadId = out.ThreadID
	}

	sent, err := srv.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", wrapError("send message", err)
	}
	return sent.Id, nil
}

// ModifyLabels adds and/or removes labels from a message.
func (s *Service) ModifyLabels(ctx context.Context, token, messageID string, add, remove []string) error {
	srv, err := s.newClient(ctx, token)
	if err != nil {
		return err
	}

	req := &gmailapi.ModifyMessageRequest{}
	if len(add) > 0 {
		req.AddLabelIds = add
	}
	if len(remove) > 0 {
		req.RemoveLabelIds = remove
	}

	_, err = srv.Users.Messages.Modify("me", messageID, req).Context(ctx).Do()
	if err != nil {
		return wrapError("modify labels", err)
	}
	return nil
}

// GetProfile returns the token owner's mailbox profile.
func (s *Service) GetProfile(ctx context.Context, token string) (*emaildomain.Profile, error) {
	srv, err := s.newClient(ctx, token)
	if err != nil {
		return nil, err
	}

	profile, err := srv.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return nil, wrapError("get profile", err)
	}

	return &emaildomain.Profile{
		EmailAddress:  profile.EmailAddress,
		MessagesTotal: profile.MessagesTotal,
		ThreadsTotal:  profile.ThreadsTotal,
	}, nil
}

// GetSignature returns the primary send-as identity's signature settings.
// A mailbox without send-as settings yields an empty signature.
func (s *Service) GetSignature(ctx context.Context, token string) (*emaildomain.Signature, error) {
	srv, err := s.newClient(ctx, token)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Users.Settings.SendAs.List("me").Context(ctx).Do()
	if err != nil {
		return nil, wrapError("get signature", err)
	}

	for _, sendAs := range resp.SendAs {
		if sendAs.IsPrimary {
			return &emaildomain.Signature{
				Signature:   sendAs.Signature,
				DisplayName: sendAs.DisplayName,
				ReplyTo:     sendAs.ReplyToAddress,
			}, nil
		}
	}
	return &emaildomain.Signature{}, nil
}

// Helper functions

func convertMessage(msg *gmailapi.Message) *emaildomain.Candidate {
	headers := ParseHeaders(msg.Payload.Headers)
	body, isHTML := decodeBody(msg.Payload)

	snippet := msg.Snippet
	if snippet == "" {
		snippet = deriveSnippet(body, isHTML)
	}

	return &emaildomain.Candidate{
		MessageID:    msg.Id,
		ThreadID:     msg.ThreadId,
		Headers:      headers,
		Snippet:      snippet,
		Body:         body,
		IsHTML:       isHTML,
		ReceivedAt:   time.Unix(msg.InternalDate/1000, 0),
		Labels:       msg.LabelIds,
		Participants: ExtractAddresses(headers.From, headers.To, headers.Cc, headers.Bcc),
	}
}

// decodeBody walks the MIME tree and returns the message text, preferring
// an HTML part over plaintext. Malformed or missing data degrades to an
// empty string, never an error.
func decodeBody(payload *gmailapi.MessagePart) (string, bool) {
	if payload == nil {
		return "", false
	}

	// Single-part message: the payload itself carries the body.
	if payload.Body != nil && payload.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			return string(data), payload.MimeType == "text/html"
		}
	}

	var htmlBody string
	var plainBody string

	var walk func(parts []*gmailapi.MessagePart)
	walk = func(parts []*gmailapi.MessagePart) {
		for _, part := range parts {
			switch part.MimeType {
			case "text/html":
				if htmlBody == "" && part.Body != nil && part.Body.Data != "" {
					if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
						htmlBody = string(data)
					}
				}
			case "text/plain":
				if plainBody == "" && part.Body != nil && part.Body.Data != "" {
					if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
						plainBody = string(data)
					}
				}
			}

			if len(part.Parts) > 0 {
				walk(part.Parts)
			}
		}
	}
	walk(payload.Parts)

	if htmlBody != "" {
		return htmlBody, true
	}
	return plainBody, false
}

func deriveSnippet(body string, isHTML bool) string {
	text := body
	if isHTML {
		text = html2text.HTML2Text(body)
	}
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > snippetLength {
		text = string(runes[:snippetLength]) + "..."
	}
	return text
}

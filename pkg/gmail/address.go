package gmail

import (
	"net/mail"
	"strings"

	emaildomain "crmdesk-backend/internal/email/domain"

	gmailapi "google.golang.org/api/gmail/v1"
)

// ParseHeaders maps the provider's loose header list onto the fixed set
// the engine cares about. Header names are matched case-insensitively;
// absent headers come back as empty strings.
func ParseHeaders(headers []*gmailapi.MessagePartHeader) emaildomain.Headers {
	return emaildomain.Headers{
		From:    getHeader(headers, "From"),
		To:      getHeader(headers, "To"),
		Cc:      getHeader(headers, "Cc"),
		Bcc:     getHeader(headers, "Bcc"),
		Subject: getHeader(headers, "Subject"),
		Date:    getHeader(headers, "Date"),
	}
}

func getHeader(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// ExtractAddresses returns every syntactically valid address found in the
// raw header values, lower-cased and de-duplicated in first-seen order.
// Display names and angle brackets are stripped; unparseable tokens are
// skipped rather than failing the whole header.
func ExtractAddresses(rawHeaders ...string) []string {
	seen := make(map[string]struct{})
	var addresses []string

	add := func(addr string) {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		addresses = append(addresses, addr)
	}

	for _, raw := range rawHeaders {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		if list, err := mail.ParseAddressList(raw); err == nil {
			for _, a := range list {
				add(a.Address)
			}
			continue
		}

		// The whole list failed to parse; salvage the tokens that are
		// individually valid.
		for _, token := range strings.Split(raw, ",") {
			if a, err := mail.ParseAddress(strings.TrimSpace(token)); err == nil {
				add(a.Address)
			}
		}
	}

	return addresses
}

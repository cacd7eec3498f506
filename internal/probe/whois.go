package probe

import (
	"context"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"github.com/costmo/validpoint/internal/advice"
)

// WhoisLookup fetches and parses a domain's registration record, returning
// the expiration date and the whole days remaining until it. A registry
// that will not answer, or answers without an expiration date, is an
// upstream NO_WHOIS.
type WhoisLookup struct {
	Client *whois.Client
	Now    func() time.Time
}

// Expiry resolves the expiration data for a domain.
func (w *WhoisLookup) Expiry(ctx context.Context, domain string) (expiration string, daysLeft int, err error) {
	client := w.Client
	if client == nil {
		client = whois.NewClient()
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	if err := ctx.Err(); err != nil {
		return "", 0, faultf("whois lookup", err)
	}

	text, err := client.Whois(domain)
	if err != nil {
		return "", 0, &UpstreamError{Tag: advice.KeyNoWhois, Err: err}
	}

	parsed, err := whoisparser.Parse(text)
	if err != nil {
		return "", 0, &UpstreamError{Tag: advice.KeyNoWhois, Err: err}
	}

	info := parsed.Domain
	if info == nil || info.ExpirationDateInTime == nil {
		return "", 0, &UpstreamError{Tag: advice.KeyNoWhois}
	}

	days := int(info.ExpirationDateInTime.Sub(now()).Hours() / 24)
	return info.ExpirationDate, days, nil
}

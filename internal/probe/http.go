package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
)

// ResponseProbe implements http-response and https-response: one GET against
// the website host, without following redirects, judged on the status code.
type ResponseProbe struct {
	Name   string
	Scheme string
	Client *http.Client
}

func (p *ResponseProbe) Command() string { return p.Name }

func (p *ResponseProbe) Probe(ctx context.Context, cfg *config.RunConfig) (Outcome, error) {
	client := p.Client
	if client == nil {
		client = &http.Client{
			// Redirects are a finding, not something to follow.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	url := p.Scheme + "://" + cfg.URL
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{}, faultf("create request", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		out := failure(classifyNetError(err))
		out.ResponseTime = elapsed
		return out, nil
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	out := Outcome{
		Raw:          advice.RawResponse{StatusCode: resp.StatusCode},
		ResponseTime: elapsed,
	}
	switch {
	case resp.StatusCode == http.StatusOK:
		out.Result = advice.ResultPass
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		out.Result = advice.ResultPunt
		out.Raw.RedirectLocation = resp.Header.Get("Location")
	default:
		out.Result = advice.ResultFail
	}
	return out, nil
}

// classifyNetError maps a transport failure to the sub-tag that selects its
// advice string.
func classifyNetError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return advice.KeyTimedOut
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return advice.KeyNotFound
	}
	return advice.KeyNoResponse
}

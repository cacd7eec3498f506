package probe

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
)

// contentFetchTimeout bounds a single page render. Browsers can hang on
// broken pages far longer than any user would wait.
const contentFetchTimeout = 60 * time.Second

// ContentProbe implements website-content: render the home page in a
// headless browser and hand the resulting markup to the content rule set.
type ContentProbe struct {
	Scheme  string
	Timeout time.Duration
	// Fetch overrides the browser fetch, for tests.
	Fetch func(ctx context.Context, url string) (string, error)
}

func (p *ContentProbe) Command() string { return advice.CmdWebsiteContent }

func (p *ContentProbe) Probe(ctx context.Context, cfg *config.RunConfig) (Outcome, error) {
	scheme := p.Scheme
	if scheme == "" {
		scheme = "https"
	}
	fetch := p.Fetch
	if fetch == nil {
		fetch = p.browserFetch
	}

	url := scheme + "://" + cfg.URL
	start := time.Now()
	html, err := fetch(ctx, url)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		return Outcome{}, err
	}

	if strings.TrimSpace(html) == "" {
		out := failure(advice.KeyNoHTML)
		out.ResponseTime = elapsed
		return out, nil
	}

	return Outcome{
		Result:       advice.ResultPass,
		Raw:          advice.RawResponse{HTML: html},
		ResponseTime: elapsed,
	}, nil
}

// browserFetch renders url in headless Chrome and returns the document
// markup after scripts have run.
func (p *ContentProbe) browserFetch(ctx context.Context, url string) (string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = contentFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		// A browser that cannot run is the operator's problem, not the
		// website's.
		return "", faultf("render page", err)
	}
	return html, nil
}

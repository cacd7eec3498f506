package runner

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
)

// DomainResult pairs one domain with its finished report, or with the error
// that kept the run from starting.
type DomainResult struct {
	Domain string
	Report advice.Report
	Err    error
}

// Multi fans a command list out across several domains with bounded
// concurrency and a global rate limit.
type Multi struct {
	Runner      *Runner
	Concurrency int
	RateLimit   int

	// ConfigDir is where per-domain override files live.
	ConfigDir string

	// StripResults omits per-item results from each report.
	StripResults bool

	// OnDomain, when set, observes each domain as it completes.
	OnDomain func(DomainResult)
}

// RunDomains tests every domain and returns results in input order. One
// domain's failure never stops the others.
func (m *Multi) RunDomains(ctx context.Context, domains []string, commands []string) []DomainResult {
	concurrency := m.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	rateLimit := m.RateLimit
	if rateLimit < 1 {
		rateLimit = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rateLimit), rateLimit)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]DomainResult, len(domains))

	for i, domain := range domains {
		wg.Add(1)
		go func(i int, domain string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := limiter.Wait(ctx); err != nil {
				results[i] = DomainResult{Domain: domain, Err: err}
				return
			}

			results[i] = m.runDomain(ctx, domain, commands)
			if m.OnDomain != nil {
				m.OnDomain(results[i])
			}
		}(i, domain)
	}

	wg.Wait()
	return results
}

func (m *Multi) runDomain(ctx context.Context, domain string, commands []string) DomainResult {
	cfg, err := config.Load(domain, m.ConfigDir)
	if err != nil {
		return DomainResult{Domain: domain, Err: err}
	}

	// A per-domain config can pin its own command list.
	if len(cfg.Commands) > 0 {
		commands = cfg.Commands
	}
	if len(commands) == 0 {
		commands = advice.DefaultCommands
	}

	run := advice.NewRun(cfg)
	if err := m.Runner.RunAll(ctx, commands, run); err != nil {
		return DomainResult{Domain: domain, Err: err}
	}

	return DomainResult{
		Domain: domain,
		Report: run.Finalize(true, m.StripResults),
	}
}

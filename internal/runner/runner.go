// Package runner executes commands against a domain: it dispatches each
// command to its probe, handles the chained and multi-step commands, and
// records every outcome on the run's advice accumulator.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
	"github.com/costmo/validpoint/internal/probe"
)

// StepFunc observes each recorded item, for progress output.
type StepFunc func(command string, item advice.ItemResult)

// Runner executes commands for one domain at a time.
type Runner struct {
	probers map[string]probe.Prober
	records *probe.RecordClient
	whois   *probe.WhoisLookup

	// OnStep, when set, is called after each item is recorded.
	OnStep StepFunc

	log *zap.SugaredLogger
}

// New builds a runner with the default probe set.
func New(log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Runner{
		probers: map[string]probe.Prober{},
		records: &probe.RecordClient{},
		whois:   &probe.WhoisLookup{},
		log:     log,
	}
	for _, p := range []probe.Prober{
		&probe.PingProbe{},
		&probe.ResolveProbe{},
		&probe.PortProbe{Name: advice.CmdHTTPPort, Port: 80},
		&probe.PortProbe{Name: advice.CmdHTTPSPort, Port: 443},
		&probe.ResponseProbe{Name: advice.CmdHTTPResponse, Scheme: "http"},
		&probe.ResponseProbe{Name: advice.CmdHTTPSResponse, Scheme: "https"},
		&probe.ContentProbe{},
	} {
		r.probers[p.Command()] = p
	}
	return r
}

// Register adds or replaces the probe behind a command. Unknown command
// names register addon probes.
func (r *Runner) Register(p probe.Prober) {
	r.probers[p.Command()] = p
}

// SetRecordClient replaces the DNS record client used by the domain command.
func (r *Runner) SetRecordClient(c *probe.RecordClient) { r.records = c }

// SetWhois replaces the whois lookup used by the domain command.
func (r *Runner) SetWhois(w *probe.WhoisLookup) { r.whois = w }

// Run executes one command and records its outcome on the run. Composite
// commands record one item per completed step.
func (r *Runner) Run(ctx context.Context, command string, run *advice.Run) error {
	cfg := run.Config()

	switch command {
	case advice.CmdWebsite:
		return r.runChained(ctx, command, advice.CmdHTTPPort, advice.CmdHTTPResponse, run)
	case advice.CmdSecureWebsite:
		return r.runChained(ctx, command, advice.CmdHTTPSPort, advice.CmdHTTPSResponse, run)
	case advice.CmdDomain:
		r.record(run, r.runDomain(ctx, cfg))
		return nil
	}

	p, ok := r.probers[command]
	if !ok {
		return fmt.Errorf("unknown command %q", command)
	}
	r.record(run, r.runProbe(ctx, command, p, cfg))
	return nil
}

// RunAll executes commands in order against the run's domain.
func (r *Runner) RunAll(ctx context.Context, commands []string, run *advice.Run) error {
	for _, command := range commands {
		if err := r.Run(ctx, command, run); err != nil {
			return err
		}
	}
	return nil
}

// runChained runs the port check and, only when it passed, the response
// check. Both outcomes are recorded under the composite command so that one
// advice table covers the whole chain. A failed or slow port short-circuits;
// there is no point timing a GET against a port that will not connect.
func (r *Runner) runChained(ctx context.Context, command, portCmd, responseCmd string, run *advice.Run) error {
	portItem := r.runProbe(ctx, command, r.probers[portCmd], run.Config())
	r.record(run, portItem)

	if portItem.Result != advice.ResultPass && portItem.Result != advice.ResultUntested {
		return nil
	}

	r.record(run, r.runProbe(ctx, command, r.probers[responseCmd], run.Config()))
	return nil
}

// runDomain collects the domain's record survey: name servers first, then
// the remaining records from the first name server so the answers are
// authoritative, then registration expiry from whois. An upstream lookup
// failure stops the survey; the records gathered so far stay attached.
func (r *Runner) runDomain(ctx context.Context, cfg *config.RunConfig) advice.ItemResult {
	item := advice.NewItemResult(advice.CmdDomain)
	records := &advice.DomainRecords{}
	item.RawResponse.Records = records
	start := time.Now()

	rc := r.records
	if rc == nil {
		rc = &probe.RecordClient{}
	}

	ns, err := rc.NS(ctx, cfg.Domain)
	if err != nil {
		return r.domainError(item, err, start)
	}
	records.NS = ns
	if len(ns) > 0 {
		rc = rc.Pin(ns[0])
	}

	www := "www." + cfg.Domain
	steps := []struct {
		dest *[]string
		run  func() ([]string, error)
	}{
		{&records.MX, func() ([]string, error) { return rc.MX(ctx, cfg.Domain) }},
		{&records.TLDA, func() ([]string, error) { return rc.A(ctx, cfg.Domain) }},
		{&records.WWWA, func() ([]string, error) { return rc.A(ctx, www) }},
		{&records.WWWCname, func() ([]string, error) { return rc.CNAME(ctx, www) }},
		{&records.TLDCname, func() ([]string, error) { return rc.CNAME(ctx, cfg.Domain) }},
	}
	for _, step := range steps {
		values, err := step.run()
		if err != nil {
			return r.domainError(item, err, start)
		}
		*step.dest = values
	}

	w := r.whois
	if w == nil {
		w = &probe.WhoisLookup{}
	}
	expiration, days, err := w.Expiry(ctx, cfg.Domain)
	if err != nil {
		return r.domainError(item, err, start)
	}
	records.Expiration = expiration
	records.DaysTilExpiry = days
	records.ExpiryKnown = true

	item.Result = advice.ResultPass
	item.ResponseTime = float64(time.Since(start).Milliseconds())
	return item
}

func (r *Runner) domainError(item advice.ItemResult, err error, start time.Time) advice.ItemResult {
	applyError(&item, err)
	item.ResponseTime = float64(time.Since(start).Milliseconds())
	r.log.Debugw("domain survey stopped", "error", err)
	return item
}

// runProbe executes one probe and folds its outcome, or its error, into an
// item recorded under command. The command may differ from the probe's own
// name when the probe runs as a step of a composite command.
func (r *Runner) runProbe(ctx context.Context, command string, p probe.Prober, cfg *config.RunConfig) advice.ItemResult {
	item := advice.NewItemResult(command)
	if p == nil {
		item.Result = advice.ResultFail
		item.RawResponse.Message = fmt.Sprintf("no probe registered for %s", command)
		return item
	}

	out, err := p.Probe(ctx, cfg)
	if err != nil {
		applyError(&item, err)
		r.log.Debugw("probe errored", "command", command, "error", err)
		return item
	}

	item.Result = out.Result
	item.ResultTags = append(item.ResultTags, out.Tags...)
	item.RawResponse = out.Raw
	item.ResponseTime = out.ResponseTime
	return item
}

// applyError converts a probe error into a failed item. Upstream errors
// carry a tag that selects advice text; anything else is a system fault
// whose message is delivered to the operator verbatim.
func applyError(item *advice.ItemResult, err error) {
	item.Result = advice.ResultFail

	var upstream *probe.UpstreamError
	if errors.As(err, &upstream) {
		item.ResultTags = append(item.ResultTags, advice.ResultTag(upstream.Tag))
		item.RawResponse.Tag = upstream.Tag
		return
	}
	item.RawResponse.Message = err.Error()
}

func (r *Runner) record(run *advice.Run, item advice.ItemResult) {
	run.RecordItem(item)
	if r.OnStep != nil {
		r.OnStep(item.Command, item)
	}
}

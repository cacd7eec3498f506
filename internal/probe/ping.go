package probe

import (
	"context"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
)

// connectivityTarget is a stable public address used to verify that the
// local machine can reach the internet at all.
const connectivityTarget = "8.8.4.4"

// PingProbe implements local-network: an ICMP echo against a known-good
// public host. It tests the operator's connection, not the domain.
type PingProbe struct {
	Target     string
	Count      int
	Timeout    time.Duration
	Privileged bool
}

func (p *PingProbe) Command() string { return advice.CmdLocalNetwork }

func (p *PingProbe) Probe(ctx context.Context, _ *config.RunConfig) (Outcome, error) {
	target := p.Target
	if target == "" {
		target = connectivityTarget
	}
	count := p.Count
	if count < 1 {
		count = 1
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = MaxResponseMillis * time.Millisecond
	}

	pinger, err := probing.NewPinger(target)
	if err != nil {
		return Outcome{}, faultf("create pinger", err)
	}
	pinger.Count = count
	pinger.Timeout = timeout
	pinger.SetPrivileged(p.Privileged)

	start := time.Now()
	if err := pinger.RunWithContext(ctx); err != nil {
		return Outcome{}, faultf("run ping", err)
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		out := failure(advice.KeyNoResponse)
		out.ResponseTime = float64(time.Since(start).Milliseconds())
		return out, nil
	}

	return Outcome{
		Result:       advice.ResultPass,
		Raw:          advice.RawResponse{},
		ResponseTime: float64(stats.AvgRtt.Milliseconds()),
	}, nil
}

package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
)

// portAttempts is how many connections a port probe times. Averaging keeps
// one slow handshake from flagging a healthy server.
const portAttempts = 3

// DialFunc opens one timed TCP connection. Swappable for tests.
type DialFunc func(network, addr string, timeout time.Duration) (net.Conn, error)

// PortProbe implements http-port and https-port: time several TCP connects
// to the website host and judge the average.
type PortProbe struct {
	Name     string
	Port     int
	Attempts int
	Timeout  time.Duration
	Dial     DialFunc
	Now      func() time.Time
}

func (p *PortProbe) Command() string { return p.Name }

func (p *PortProbe) Probe(ctx context.Context, cfg *config.RunConfig) (Outcome, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = portAttempts
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = MaxResponseMillis * time.Millisecond
	}
	dial := p.Dial
	if dial == nil {
		dial = net.DialTimeout
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	addr := net.JoinHostPort(cfg.URL, strconv.Itoa(p.Port))
	stats := advice.LatencyStats{Attempts: attempts}
	succeeded := 0

	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, faultf("port probe", err)
		}

		start := now()
		conn, err := dial("tcp", addr, timeout)
		if err != nil {
			continue
		}
		conn.Close()

		ms := float64(now().Sub(start).Microseconds()) / 1000
		if succeeded == 0 || ms < stats.Min {
			stats.Min = ms
		}
		if ms > stats.Max {
			stats.Max = ms
		}
		stats.Avg += ms
		succeeded++
	}

	if succeeded == 0 {
		out := failure(advice.KeyNoResponse)
		out.Raw.Latency = &stats
		return out, nil
	}
	stats.Avg /= float64(succeeded)

	out := Outcome{
		Result:       advice.ResultPass,
		Raw:          advice.RawResponse{Latency: &stats},
		ResponseTime: stats.Avg,
	}
	if stats.Avg > MaxResponseMillis {
		out.Result = advice.ResultPunt
		out.Tags = []advice.ResultTag{advice.ResultTag(advice.KeyTimedOut)}
		out.Raw.Tag = advice.KeyTimedOut
	}
	return out, nil
}

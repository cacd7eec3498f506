package probe

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
)

// resolutionTarget is a name that always resolves when DNS works, used to
// verify the operator's own resolver.
const resolutionTarget = "www.google.com"

// ResolveProbe implements local-dns: can this machine look up names at all.
type ResolveProbe struct {
	Target   string
	Resolver *net.Resolver
}

func (p *ResolveProbe) Command() string { return advice.CmdLocalDNS }

func (p *ResolveProbe) Probe(ctx context.Context, _ *config.RunConfig) (Outcome, error) {
	target := p.Target
	if target == "" {
		target = resolutionTarget
	}
	resolver := p.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	start := time.Now()
	addrs, err := resolver.LookupHost(ctx, target)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil || len(addrs) == 0 {
		out := failure(advice.KeyNoAnswer)
		out.ResponseTime = elapsed
		return out, nil
	}

	return Outcome{
		Result:       advice.ResultPass,
		ResponseTime: elapsed,
	}, nil
}

// RecordClient issues typed DNS queries for the domain record survey,
// optionally pinned to a single name server so every answer comes from an
// authoritative source.
type RecordClient struct {
	Client *dns.Client
	Server string
}

// Pin returns a copy of the client that sends every query to server.
func (c *RecordClient) Pin(server string) *RecordClient {
	return &RecordClient{Client: c.Client, Server: net.JoinHostPort(server, "53")}
}

func (c *RecordClient) server() (string, error) {
	if c.Server != "" {
		return c.Server, nil
	}
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return "", faultf("load resolver config", err)
	}
	return net.JoinHostPort(conf.Servers[0], conf.Port), nil
}

// query runs one typed question. A transport failure is an upstream
// NO_ANSWER; a clean reply with no matching records is an empty slice.
func (c *RecordClient) query(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	server, err := c.server()
	if err != nil {
		return nil, err
	}

	client := c.Client
	if client == nil {
		client = &dns.Client{Timeout: MaxResponseMillis * time.Millisecond}
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	reply, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return nil, &UpstreamError{Tag: advice.KeyNoAnswer, Err: err}
	}
	if reply.Rcode != dns.RcodeSuccess && reply.Rcode != dns.RcodeNameError {
		return nil, &UpstreamError{Tag: advice.KeyNoAnswer}
	}
	return reply.Answer, nil
}

// NS returns the name server hosts for a domain.
func (c *RecordClient) NS(ctx context.Context, domain string) ([]string, error) {
	answers, err := c.query(ctx, domain, dns.TypeNS)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range answers {
		if ns, ok := rr.(*dns.NS); ok {
			out = append(out, trimDot(ns.Ns))
		}
	}
	return out, nil
}

// MX returns the mail exchanger hosts for a domain.
func (c *RecordClient) MX(ctx context.Context, domain string) ([]string, error) {
	answers, err := c.query(ctx, domain, dns.TypeMX)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range answers {
		if mx, ok := rr.(*dns.MX); ok {
			out = append(out, trimDot(mx.Mx))
		}
	}
	return out, nil
}

// A returns the IPv4 addresses recorded for a host. CNAME records that
// appear in the answer chain are not counted.
func (c *RecordClient) A(ctx context.Context, host string) ([]string, error) {
	answers, err := c.query(ctx, host, dns.TypeA)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range answers {
		if a, ok := rr.(*dns.A); ok {
			out = append(out, a.A.String())
		}
	}
	return out, nil
}

// CNAME returns the alias targets recorded for a host.
func (c *RecordClient) CNAME(ctx context.Context, host string) ([]string, error) {
	answers, err := c.query(ctx, host, dns.TypeCNAME)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range answers {
		if cname, ok := rr.(*dns.CNAME); ok {
			out = append(out, trimDot(cname.Target))
		}
	}
	return out, nil
}

func trimDot(name string) string {
	return strings.TrimSuffix(name, ".")
}

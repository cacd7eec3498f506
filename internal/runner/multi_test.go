package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/probe"
)

func TestMultiRunDomains(t *testing.T) {
	r := New(nil)
	r.Register(&stubProbe{
		name: advice.CmdLocalNetwork,
		out:  probe.Outcome{Result: advice.ResultPass},
	})

	m := &Multi{Runner: r, Concurrency: 2, RateLimit: 10, StripResults: true}

	domains := []string{"one.example.com", "two.example.com", "three.example.com"}
	results := m.RunDomains(context.Background(), domains, []string{advice.CmdLocalNetwork})

	if len(results) != len(domains) {
		t.Fatalf("results = %d, want %d", len(results), len(domains))
	}
	for i, res := range results {
		if res.Domain != domains[i] {
			t.Errorf("result %d domain = %q, want %q (input order)", i, res.Domain, domains[i])
		}
		if res.Err != nil {
			t.Errorf("domain %s errored: %v", res.Domain, res.Err)
		}
		if res.Report.GreatestSeverity != advice.SeverityOK {
			t.Errorf("domain %s severity = %v, want OK", res.Domain, res.Report.GreatestSeverity)
		}
	}
}

func TestMultiUsesPerDomainCommandList(t *testing.T) {
	dir := t.TempDir()
	override := []byte(`{"commands": ["local-dns"]}`)
	if err := os.WriteFile(filepath.Join(dir, "example.com.json"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	network := &stubProbe{name: advice.CmdLocalNetwork, out: probe.Outcome{Result: advice.ResultPass}}
	dns := &stubProbe{name: advice.CmdLocalDNS, out: probe.Outcome{Result: advice.ResultPass}}

	r := New(nil)
	r.Register(network)
	r.Register(dns)

	m := &Multi{Runner: r, ConfigDir: dir, StripResults: true}
	results := m.RunDomains(context.Background(), []string{"example.com"}, []string{advice.CmdLocalNetwork})

	if results[0].Err != nil {
		t.Fatalf("run errored: %v", results[0].Err)
	}
	if dns.calls != 1 {
		t.Errorf("local-dns ran %d times, want 1 (config override)", dns.calls)
	}
	if network.calls != 0 {
		t.Errorf("local-network ran %d times, want 0", network.calls)
	}
}

func TestMultiReportsBadConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "example.com.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := &Multi{Runner: New(nil), ConfigDir: dir}
	results := m.RunDomains(context.Background(), []string{"example.com"}, []string{advice.CmdLocalNetwork})

	if results[0].Err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
}

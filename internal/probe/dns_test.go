package probe

import (
	"context"
	"testing"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
)

func TestTrimDot(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "ns1.example.com.", want: "ns1.example.com"},
		{in: "ns1.example.com", want: "ns1.example.com"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := trimDot(tt.in); got != tt.want {
			t.Errorf("trimDot(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecordClientPin(t *testing.T) {
	c := &RecordClient{}
	pinned := c.Pin("ns1.example.com")
	if pinned.Server != "ns1.example.com:53" {
		t.Fatalf("pinned server = %q, want ns1.example.com:53", pinned.Server)
	}
	if c.Server != "" {
		t.Fatal("Pin mutated the original client")
	}
}

func TestResolveProbeEmptyAnswer(t *testing.T) {
	// A name under .invalid never resolves (RFC 2606), so this exercises the
	// failure path without depending on a specific resolver setup.
	p := &ResolveProbe{Target: "does-not-exist.invalid"}
	out, err := p.Probe(context.Background(), config.ForDomain("example.com"))
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if out.Result != advice.ResultFail {
		t.Fatalf("result = %v, want FAIL", out.Result)
	}
	if out.Raw.Tag != advice.KeyNoAnswer {
		t.Fatalf("tag = %q, want NO_ANSWER", out.Raw.Tag)
	}
}

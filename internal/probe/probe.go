// Package probe implements the network tests behind each command: ICMP
// reachability, DNS resolution, TCP port timing, HTTP responses, whois
// lookups and page-content fetches. Probes return an Outcome describing
// what the remote side did, or an error describing why no outcome could be
// produced.
package probe

import (
	"context"
	"fmt"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
)

// MaxResponseMillis is the longest acceptable connection time. Anything
// slower still works but is worth telling the site owner about.
const MaxResponseMillis = 5000

// Outcome is a probe's view of a completed test: the result tag, any
// sub-tags accumulated along the way, and the probe-specific payload.
type Outcome struct {
	Result       advice.ResultTag
	Tags         []advice.ResultTag
	Raw          advice.RawResponse
	ResponseTime float64
}

// Prober runs one command's network test.
type Prober interface {
	// Command returns the command name the probe implements.
	Command() string

	// Probe runs the test. A returned error means the test could not
	// produce an outcome; *SystemFault marks tooling or environment
	// failures and *UpstreamError marks remote services that answered
	// with nothing usable.
	Probe(ctx context.Context, cfg *config.RunConfig) (Outcome, error)
}

// SystemFault is an error in the probe infrastructure itself rather than in
// the thing being tested. Its message is surfaced to the operator verbatim.
type SystemFault struct {
	Op  string
	Err error
}

func (f *SystemFault) Error() string {
	return fmt.Sprintf("%s: %v", f.Op, f.Err)
}

func (f *SystemFault) Unwrap() error { return f.Err }

// faultf wraps an environmental failure with the operation that hit it.
func faultf(op string, err error) *SystemFault {
	return &SystemFault{Op: op, Err: err}
}

// UpstreamError is a remote service that responded, but with nothing the
// test can use. Tag selects the advice string for the failure.
type UpstreamError struct {
	Tag string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Tag, e.Err)
	}
	return e.Tag
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// failure builds a FAIL outcome tagged with a sub-tag such as NO_RESPONSE.
func failure(tag string) Outcome {
	return Outcome{
		Result: advice.ResultFail,
		Tags:   []advice.ResultTag{advice.ResultTag(tag)},
		Raw:    advice.RawResponse{Tag: tag},
	}
}

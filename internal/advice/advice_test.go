package advice

import (
	"encoding/json"
	"testing"

	"github.com/costmo/validpoint/internal/config"
)

func passItem(command string) ItemResult {
	item := NewItemResult(command)
	item.Result = ResultPass
	return item
}

func TestRunFinalizeHealthy(t *testing.T) {
	run := NewRun(config.ForDomain("example.com"))
	run.RecordItem(passItem(CmdLocalNetwork))
	run.RecordItem(passItem(CmdHTTPResponse))

	report := run.Finalize(true, true)

	if report.Domain != "example.com" {
		t.Errorf("domain = %q, want example.com", report.Domain)
	}
	if report.GreatestSeverity != SeverityOK {
		t.Errorf("greatest severity = %v, want OK", report.GreatestSeverity)
	}
	if len(report.TestResult.Actions) != 0 {
		t.Errorf("actions = %v, want none", report.TestResult.Actions)
	}
	if report.TestResult.Results != nil {
		t.Errorf("results kept despite stripping: %v", report.TestResult.Results)
	}
	if report.Config != nil {
		t.Error("config kept despite stripping")
	}
}

func TestRunFinalizeTracksGreatestSeverity(t *testing.T) {
	run := NewRun(config.ForDomain("example.com"))

	run.RecordItem(passItem(CmdLocalNetwork))

	slow := NewItemResult(CmdHTTPPort)
	slow.Result = ResultPunt
	slow.RawResponse.Tag = KeyTimedOut
	run.RecordItem(slow)

	broken := NewItemResult(CmdHTTPSResponse)
	broken.Result = ResultFail
	broken.RawResponse.StatusCode = 500
	run.RecordItem(broken)

	report := run.Finalize(true, true)

	if report.GreatestSeverity != SeverityUrgent {
		t.Fatalf("greatest severity = %v, want URGENT", report.GreatestSeverity)
	}
	if len(report.TestResult.Actions) != 2 {
		t.Fatalf("actions = %d, want 2 (the PASS needs none)", len(report.TestResult.Actions))
	}

	// Severity never decreases as more items are classified.
	run.RecordItem(passItem(CmdLocalDNS))
	report = run.Finalize(true, true)
	if report.GreatestSeverity != SeverityUrgent {
		t.Fatalf("greatest severity dropped to %v after a later PASS", report.GreatestSeverity)
	}
}

func TestRunFinalizeIsRepeatable(t *testing.T) {
	run := NewRun(config.ForDomain("example.com"))

	broken := NewItemResult(CmdHTTPResponse)
	broken.Result = ResultFail
	broken.RawResponse.StatusCode = 404
	run.RecordItem(broken)

	first := run.Finalize(true, true)
	second := run.Finalize(true, true)

	if len(first.TestResult.Actions) != 1 {
		t.Fatalf("actions = %d, want 1", len(first.TestResult.Actions))
	}
	if len(second.TestResult.Actions) != len(first.TestResult.Actions) {
		t.Fatalf("second finalize added actions: %d vs %d",
			len(second.TestResult.Actions), len(first.TestResult.Actions))
	}
	if second.GreatestSeverity != first.GreatestSeverity {
		t.Fatalf("second finalize changed severity: %v vs %v",
			second.GreatestSeverity, first.GreatestSeverity)
	}
}

func TestRunFinalizeEmptyRun(t *testing.T) {
	run := NewRun(config.ForDomain("example.com"))
	report := run.Finalize(true, true)

	if report.GreatestSeverity != SeverityIgnore {
		t.Errorf("greatest severity = %v, want IGNORE for an empty run", report.GreatestSeverity)
	}
	if report.TestResult.Actions == nil {
		t.Error("actions should serialize as an empty list, not null")
	}
}

func TestRunFinalizeKeepsRawWhenAsked(t *testing.T) {
	run := NewRun(config.ForDomain("example.com"))
	run.RecordItem(passItem(CmdLocalNetwork))

	report := run.Finalize(false, false)
	if len(report.TestResult.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(report.TestResult.Results))
	}
	if report.Config == nil {
		t.Fatal("config stripped despite being requested")
	}
}

func TestReportSerialization(t *testing.T) {
	run := NewRun(config.ForDomain("example.com"))

	broken := NewItemResult(CmdHTTPResponse)
	broken.Result = ResultFail
	broken.RawResponse.StatusCode = 500
	run.RecordItem(broken)

	data, err := json.Marshal(run.Finalize(true, true))
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if decoded.GreatestSeverity != SeverityUrgent {
		t.Errorf("round-tripped severity = %v, want URGENT", decoded.GreatestSeverity)
	}
	if decoded.Config != nil {
		t.Error("stripped config came back after round trip")
	}
	if len(decoded.TestResult.Results) != 0 {
		t.Error("stripped results came back after round trip")
	}
}

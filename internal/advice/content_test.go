package advice

import (
	"strings"
	"testing"

	"github.com/costmo/validpoint/internal/config"
)

func TestClassifyPassIsOK(t *testing.T) {
	cfg := config.ForDomain("example.com")

	for _, command := range ValidCommands {
		item := NewItemResult(command)
		item.Result = ResultPass
		if command == CmdWebsiteContent {
			item.RawResponse.HTML = healthyPage
		}

		got := Classify(item, cfg)
		if got.Severity > SeverityOK {
			t.Errorf("Classify(%s, PASS) severity = %v, want at most OK", command, got.Severity)
		}
	}
}

func TestClassifyLocalFailIsUrgent(t *testing.T) {
	cfg := config.ForDomain("example.com")

	for _, command := range []string{CmdLocalNetwork, CmdLocalDNS} {
		item := NewItemResult(command)
		item.Result = ResultFail
		item.RawResponse.Tag = KeyNoResponse

		got := Classify(item, cfg)
		if got.Severity != SeverityUrgent {
			t.Errorf("Classify(%s, FAIL) severity = %v, want URGENT", command, got.Severity)
		}
		if got.Content == "" {
			t.Errorf("Classify(%s, FAIL) produced empty content", command)
		}
	}
}

func TestClassifyDirectMessage(t *testing.T) {
	cfg := config.ForDomain("example.com")

	item := NewItemResult(CmdHTTPResponse)
	item.Result = ResultFail
	item.RawResponse.Message = "create request: invalid URL"

	got := Classify(item, cfg)
	if got.Severity != SeverityDirectMessage {
		t.Fatalf("severity = %v, want DIRECT_MESSAGE", got.Severity)
	}
	if got.Content != "create request: invalid URL" {
		t.Fatalf("content = %q, want the raw message", got.Content)
	}
}

func TestClassifyRedirects(t *testing.T) {
	tests := []struct {
		name         string
		location     string
		wantSeverity Severity
		wantResult   ResultTag
	}{
		{
			name:         "redirect inside the domain",
			location:     "https://example.com/welcome",
			wantSeverity: SeverityOK,
			wantResult:   ResultPass,
		},
		{
			name:         "redirect to an unrelated host",
			location:     "https://parked.example.net/",
			wantSeverity: SeverityNotice,
			wantResult:   ResultPunt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.ForDomain("example.com")
			item := NewItemResult(CmdHTTPResponse)
			item.Result = ResultPunt
			item.RawResponse.StatusCode = 301
			item.RawResponse.RedirectLocation = tt.location

			got := Classify(item, cfg)
			if got.Severity != tt.wantSeverity {
				t.Errorf("severity = %v, want %v", got.Severity, tt.wantSeverity)
			}
			if got.Result != tt.wantResult {
				t.Errorf("result = %v, want %v", got.Result, tt.wantResult)
			}
			if tt.wantSeverity == SeverityNotice && !strings.Contains(got.Content, tt.location) {
				t.Errorf("content %q does not mention the redirect location", got.Content)
			}
		})
	}
}

func TestClassifyRedirectIsRepeatable(t *testing.T) {
	cfg := config.ForDomain("example.com")
	item := NewItemResult(CmdHTTPResponse)
	item.Result = ResultPunt
	item.RawResponse.RedirectLocation = "https://example.com/home"

	first := Classify(item, cfg)
	second := Classify(item, cfg)
	if first != second {
		t.Fatalf("repeated classification differs: %+v vs %+v", first, second)
	}
}

func TestClassifyBadStatusCode(t *testing.T) {
	cfg := config.ForDomain("example.com")
	item := NewItemResult(CmdHTTPSResponse)
	item.Result = ResultFail
	item.RawResponse.StatusCode = 503

	got := Classify(item, cfg)
	if got.Severity != SeverityUrgent {
		t.Fatalf("severity = %v, want URGENT", got.Severity)
	}
	if !strings.Contains(got.Content, "503") {
		t.Fatalf("content %q does not include the status code", got.Content)
	}
}

func TestClassifyNetworkTags(t *testing.T) {
	cfg := config.ForDomain("example.com")

	for _, tag := range []string{KeyNoResponse, KeyNotFound, KeyTimedOut} {
		item := NewItemResult(CmdHTTPResponse)
		item.Result = ResultFail
		item.RawResponse.Tag = tag

		got := Classify(item, cfg)
		if got.Severity != SeverityUrgent {
			t.Errorf("tag %s: severity = %v, want URGENT", tag, got.Severity)
		}
		if got.Content == "" {
			t.Errorf("tag %s: empty content", tag)
		}
	}
}

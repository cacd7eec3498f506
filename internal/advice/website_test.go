package advice

import (
	"strings"
	"testing"

	"github.com/costmo/validpoint/internal/config"
)

const healthyPage = `<html><head><title>Example</title><meta name="description" content="A site"></head>` +
	`<body><h1>Welcome</h1><p>Plenty of content here.</p></body></html>`

func TestContentFindings(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "healthy page",
			html: healthyPage,
			want: nil,
		},
		{
			name: "missing title and headline",
			html: `<html><head><meta charset="utf-8"></head><body><p>text</p></body></html>`,
			want: []string{KeyTitleNone, KeyH1None},
		},
		{
			name: "empty body",
			html: `<html><head><title>t</title></head><body></body></html>`,
			want: []string{KeyBodyNone, KeyH1None},
		},
		{
			name: "robots noindex",
			html: `<html><head><title>t</title><meta name="robots" content="noindex, nofollow"></head>` +
				`<body><h1>h</h1><p>text</p></body></html>`,
			want: []string{KeyNoindex},
		},
		{
			name: "no markup at all",
			html: "",
			want: []string{KeyNoHTML},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := contentFindings(RawResponse{HTML: tt.html})

			var keys []string
			for _, f := range findings {
				keys = append(keys, f.key)
			}
			if len(keys) != len(tt.want) {
				t.Fatalf("findings = %v, want %v", keys, tt.want)
			}
			for i := range keys {
				if keys[i] != tt.want[i] {
					t.Fatalf("findings = %v, want %v", keys, tt.want)
				}
			}
		})
	}
}

func TestClassifyContentFindingsAreIndependent(t *testing.T) {
	cfg := config.ForDomain("example.com")
	item := NewItemResult(CmdWebsiteContent)
	item.Result = ResultPass
	item.RawResponse.HTML = `<html><head><meta charset="utf-8"></head><body><p>text</p></body></html>`

	got := Classify(item, cfg)

	// A missing title is URGENT even though the missing headline alone would
	// only be a NOTICE; both pieces of advice are present.
	if got.Severity != SeverityUrgent {
		t.Fatalf("severity = %v, want URGENT", got.Severity)
	}
	if !strings.Contains(got.Content, "no title") {
		t.Errorf("content %q missing title advice", got.Content)
	}
	if !strings.Contains(got.Content, "main headline") {
		t.Errorf("content %q missing headline advice", got.Content)
	}
	if got.Result != ResultFail {
		t.Errorf("result = %v, want FAIL", got.Result)
	}
}

func TestClassifyNoindexIsNotice(t *testing.T) {
	cfg := config.ForDomain("example.com")
	item := NewItemResult(CmdWebsiteContent)
	item.Result = ResultPass
	item.RawResponse.HTML = `<html><head><title>t</title><meta name="robots" content="noindex"></head>` +
		`<body><h1>h</h1><p>text</p></body></html>`

	got := Classify(item, cfg)
	if got.Severity != SeverityNotice {
		t.Fatalf("severity = %v, want NOTICE", got.Severity)
	}
	if !strings.Contains(got.Content, "search engines") {
		t.Fatalf("content %q does not explain the noindex finding", got.Content)
	}
}

func TestWebsiteSeverity(t *testing.T) {
	tests := []struct {
		name     string
		tag      ResultTag
		extraKey string
		want     Severity
	}{
		{name: "pass", tag: ResultPass, want: SeverityOK},
		{name: "punt is notice", tag: ResultPunt, want: SeverityNotice},
		{name: "fail is urgent", tag: ResultFail, want: SeverityUrgent},
		{name: "missing head downgraded", tag: ResultFail, extraKey: KeyHeadNone, want: SeverityNotice},
		{name: "missing headline downgraded", tag: ResultFail, extraKey: KeyH1None, want: SeverityNotice},
		{name: "noindex downgraded", tag: ResultFail, extraKey: KeyNoindex, want: SeverityNotice},
		{name: "missing title stays urgent", tag: ResultFail, extraKey: KeyTitleNone, want: SeverityUrgent},
		{name: "untested ignored", tag: ResultUntested, want: SeverityIgnore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := websiteSeverity(tt.tag, tt.extraKey); got != tt.want {
				t.Fatalf("websiteSeverity(%v, %q) = %v, want %v", tt.tag, tt.extraKey, got, tt.want)
			}
		})
	}
}

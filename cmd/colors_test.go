package cmd

import (
	"testing"

	"github.com/fatih/color"

	"github.com/costmo/validpoint/internal/advice"
)

func TestFormatSeverity(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})

	tests := []struct {
		name     string
		severity advice.Severity
		want     string
	}{
		{name: "ok", severity: advice.SeverityOK, want: "OK"},
		{name: "ignore", severity: advice.SeverityIgnore, want: "IGNORE"},
		{name: "notice", severity: advice.SeverityNotice, want: "NOTICE"},
		{name: "urgent", severity: advice.SeverityUrgent, want: "URGENT"},
		{name: "direct message", severity: advice.SeverityDirectMessage, want: "DIRECT_MESSAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSeverity(tt.severity); got != tt.want {
				t.Fatalf("formatSeverity(%v) = %q, want %q", tt.severity, got, tt.want)
			}
		})
	}
}

func TestFormatResult(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})

	for _, tag := range []advice.ResultTag{advice.ResultPass, advice.ResultFail, advice.ResultPunt, advice.ResultUntested} {
		if got := formatResult(tag); got != string(tag) {
			t.Errorf("formatResult(%v) = %q, want the tag text", tag, got)
		}
	}
}

package cmd

import (
	"github.com/fatih/color"

	"github.com/costmo/validpoint/internal/advice"
)

var (
	colorOK     = color.New(color.FgGreen).SprintFunc()
	colorNotice = color.New(color.FgYellow).SprintFunc()
	colorUrgent = color.New(color.FgRed).SprintFunc()
	colorHeader = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func formatSeverity(s advice.Severity) string {
	name := s.Name()
	switch {
	case s <= advice.SeverityOK:
		return colorOK(name)
	case s == advice.SeverityNotice:
		return colorNotice(name)
	default:
		return colorUrgent(name)
	}
}

func formatResult(tag advice.ResultTag) string {
	switch tag {
	case advice.ResultPass:
		return colorOK(string(tag))
	case advice.ResultPunt:
		return colorNotice(string(tag))
	case advice.ResultFail:
		return colorUrgent(string(tag))
	default:
		return string(tag)
	}
}

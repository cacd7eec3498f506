package advice

import "github.com/costmo/validpoint/internal/config"

// Assessment is what an advisor derives from one item result: the severity,
// the advice text, and possibly a rewritten result tag (a redirect PUNT that
// matched the configured domain becomes a PASS, a multi-finding rule set
// reports the tag of its worst finding).
type Assessment struct {
	Severity Severity
	Content  string
	Result   ResultTag
}

// finding is one rule-set hit: an intermediate key plus the result tag the
// rule assigns.
type finding struct {
	key     string
	result  ResultTag
	message string
}

// baseSeverity is the system-default tag mapping. Advisors override the
// states that need something stronger.
func baseSeverity(tag ResultTag) Severity {
	switch tag {
	case ResultPass:
		return SeverityOK
	case ResultFail:
		return SeverityNotice
	case ResultPunt:
		return SeverityIgnore
	case ResultUntested:
		return SeverityIgnore
	default:
		return SeverityIgnore
	}
}

// Classify derives severity and advice content for an item result by
// dispatching to the advisor for the item's category. Unknown categories
// (addon results with no registered advisor) classify to IGNORE with empty
// content rather than failing.
func Classify(item ItemResult, cfg *config.RunConfig) Assessment {
	switch item.Category {
	case CategoryLocal:
		return adviseLocal(item)
	case CategoryWebsite:
		return adviseWebsite(item, cfg)
	case CategoryWebsiteAdmin:
		return adviseWebsiteAdmin(item, cfg)
	default:
		return Assessment{
			Severity: SeverityIgnore,
			Result:   item.Result,
		}
	}
}

// directMessage reports whether the item carries a system-error message that
// must be surfaced verbatim instead of classified. A tooling fault is an
// operator problem, not a website problem.
func directMessage(item ItemResult) (Assessment, bool) {
	if item.Result == ResultFail && item.RawResponse.Message != "" {
		return Assessment{
			Severity: SeverityDirectMessage,
			Content:  item.RawResponse.Message,
			Result:   item.Result,
		}, true
	}
	return Assessment{}, false
}

// assessFindings folds a rule set's findings into a single assessment:
// severity is the strict maximum across findings (first occurrence wins
// ties), content is each finding's advice text joined by newlines, and the
// result tag follows the finding that produced the maximum.
func assessFindings(item ItemResult, findings []finding, severityFor func(f finding) Severity) Assessment {
	out := Assessment{
		Severity: SeverityIgnore,
		Result:   item.Result,
	}
	for _, f := range findings {
		severity := severityFor(f)

		if severity > out.Severity {
			out.Severity = severity
			out.Result = f.result
		}

		if severity == SeverityDirectMessage && f.message != "" {
			out.Content += f.message
		} else {
			out.Content += contentFor(item.Category, item.Command, severity, f.key) + "\n"
		}
	}
	return out
}

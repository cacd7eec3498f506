package advice

import (
	"github.com/costmo/validpoint/internal/config"
)

// NotifySlowPort, when set, is called for port checks that connected but
// exceeded the acceptable response time. Integrations can hook it to page
// someone; nothing is registered by default.
var NotifySlowPort func(item ItemResult)

// adviseWebsiteAdmin classifies results for the website-admin category
// (http-port, https-port, domain). These findings are aimed at whoever
// manages the hosting rather than the site's content.
func adviseWebsiteAdmin(item ItemResult, cfg *config.RunConfig) Assessment {
	if a, ok := directMessage(item); ok {
		return a
	}

	if item.Command == CmdDomain {
		return adviseDomain(item)
	}

	// Port checks. A PUNT is a connection that succeeded but took too long.
	if item.Result == ResultPunt && cfg != nil && cfg.NotifySlowPort && NotifySlowPort != nil {
		NotifySlowPort(item)
	}
	severity := adminSeverity(item.Result)
	return Assessment{
		Severity: severity,
		Content:  contentFor(CategoryWebsiteAdmin, item.Command, severity, item.RawResponse.Tag),
		Result:   item.Result,
	}
}

// adviseDomain runs the record rule set over the collected DNS and whois
// data and folds the findings.
func adviseDomain(item ItemResult) Assessment {
	findings := domainFindings(item.RawResponse)

	if len(findings) == 0 {
		return Assessment{
			Severity: SeverityOK,
			Content:  contentFor(CategoryWebsiteAdmin, item.Command, SeverityOK, ""),
			Result:   item.Result,
		}
	}

	return assessFindings(item, findings, func(f finding) Severity {
		return adminSeverity(f.result)
	})
}

// domainFindings applies the record rules in a fixed order so the advice
// text always reads the same way for the same records.
func domainFindings(raw RawResponse) []finding {
	// A lookup that produced no data at all short-circuits the rule set;
	// there is nothing meaningful to say about individual records.
	if raw.Tag == KeyNoAnswer || raw.Tag == KeyNoWhois {
		return []finding{{key: raw.Tag, result: ResultFail}}
	}
	records := raw.Records
	if records == nil {
		return []finding{{key: KeyNoAnswer, result: ResultFail}}
	}

	var findings []finding

	if len(records.NS) == 0 {
		findings = append(findings, finding{key: KeyNSNone, result: ResultFail})
	}

	if len(records.TLDCname) > 0 {
		findings = append(findings, finding{key: KeyTLDIsAlias, result: ResultFail})
	}

	// The www host is reachable through either an A record or a CNAME;
	// only the absence of both is a problem.
	if len(records.WWWCname) == 0 && len(records.WWWA) == 0 {
		findings = append(findings, finding{key: KeyWWWCnameANone, result: ResultFail})
	}

	if len(records.MX) == 0 {
		findings = append(findings, finding{key: KeyMXNone, result: ResultFail})
	}

	if len(records.TLDA) == 0 {
		findings = append(findings, finding{key: KeyTLDANone, result: ResultFail})
	}

	if records.ExpiryKnown {
		switch {
		case records.DaysTilExpiry < 1:
			findings = append(findings, finding{key: KeyDomainExpired, result: ResultFail})
		case records.DaysTilExpiry < 90:
			findings = append(findings, finding{key: KeyDomainWillExpir, result: ResultPunt})
		}
	}

	return findings
}

// adminSeverity overrides the default tag mapping for website-admin checks:
// a PUNT (slow port, approaching expiry) is worth a NOTICE, a FAIL means the
// hosting is broken and is URGENT.
func adminSeverity(tag ResultTag) Severity {
	switch tag {
	case ResultPunt:
		return SeverityNotice
	case ResultFail:
		return SeverityUrgent
	default:
		return baseSeverity(tag)
	}
}

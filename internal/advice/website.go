package advice

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/costmo/validpoint/internal/config"
)

// noticeDowngrades are FAIL sub-keys that describe SEO or cosmetic issues
// rather than availability failures, so they rank NOTICE instead of URGENT.
var noticeDowngrades = map[string]bool{
	KeyHeadNone:    true,
	KeyH1None:      true,
	KeyNoindex:     true,
	KeyReplacement: true,
}

// networkFailTags are raw sub-tags that mean the probe ran but never got a
// usable answer from the site. They select more specific advice text.
var networkFailTags = map[string]bool{
	KeyNoResponse: true,
	KeyNotFound:   true,
	KeyTimedOut:   true,
}

// adviseWebsite classifies results for the website category
// (http-response, https-response, website, secure-website, website-content).
func adviseWebsite(item ItemResult, cfg *config.RunConfig) Assessment {
	// The only PUNT condition for response checks is a redirect. A redirect
	// that points inside the user's own domain is not a problem.
	// The match is plain substring containment, which can false-positive on
	// addresses that merely embed the domain name; preserved as-is.
	if item.Result == ResultPunt && cfg != nil && cfg.Domain != "" &&
		strings.Contains(item.RawResponse.Display(), cfg.Domain) {
		item.Result = ResultPass
	}

	if a, ok := directMessage(item); ok {
		return a
	}

	switch {
	case item.Command == CmdWebsiteContent:
		return adviseWebsiteContent(item)

	case networkFailTags[item.RawResponse.Tag]:
		severity := websiteSeverity(item.Result, "")
		return Assessment{
			Severity: severity,
			Content:  contentFor(CategoryWebsite, item.Command, severity, item.RawResponse.Tag),
			Result:   item.Result,
		}

	case item.Command == CmdWebsite || item.Command == CmdSecureWebsite:
		// The chained response step hands its outcome to the website command
		// itself; redirect and status-code advice is keyed by REPLACEMENT.
		severity := websiteSeverity(item.Result, KeyReplacement)
		content := contentFor(CategoryWebsite, item.Command, severity, KeyReplacement)
		return Assessment{
			Severity: severity,
			Content:  substitute(content, item.RawResponse.Display()),
			Result:   item.Result,
		}

	default:
		severity := websiteSeverity(item.Result, "")
		content := contentFor(CategoryWebsite, item.Command, severity, "")
		return Assessment{
			Severity: severity,
			Content:  substitute(content, item.RawResponse.Display()),
			Result:   item.Result,
		}
	}
}

// adviseWebsiteContent runs the structural rule set over the fetched page
// markup and folds the findings.
func adviseWebsiteContent(item ItemResult) Assessment {
	findings := contentFindings(item.RawResponse)

	if len(findings) == 0 {
		return Assessment{
			Severity: SeverityOK,
			Content:  contentFor(CategoryWebsite, item.Command, SeverityOK, ""),
			Result:   item.Result,
		}
	}

	return assessFindings(item, findings, func(f finding) Severity {
		return websiteSeverity(f.result, f.key)
	})
}

// websiteSeverity overrides the default tag mapping for website checks:
// PUNT (an unresolved redirect) is worth a NOTICE, FAIL is URGENT unless the
// sub-key marks it as cosmetic.
func websiteSeverity(tag ResultTag, extraKey string) Severity {
	switch tag {
	case ResultPunt:
		return SeverityNotice
	case ResultFail:
		if noticeDowngrades[extraKey] {
			return SeverityNotice
		}
		return SeverityUrgent
	default:
		return baseSeverity(tag)
	}
}

// contentFindings applies the structural rules to page markup. Rule order
// fixes the order of concatenated advice; severity is computed per finding.
func contentFindings(raw RawResponse) []finding {
	// No markup to examine means the fetch itself failed; report its tag as
	// the single finding.
	if raw.HTML == "" {
		key := raw.Tag
		if key == "" {
			key = KeyNoHTML
		}
		return []finding{{key: key, result: ResultFail}}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw.HTML))
	if err != nil {
		return []finding{{key: KeyNoHTML, result: ResultFail}}
	}

	var findings []finding

	head := doc.Find("head")
	if head.Length() == 0 || head.Children().Length() == 0 {
		findings = append(findings, finding{key: KeyHeadNone, result: ResultFail})
	}

	title := doc.Find("head title")
	if title.Length() == 0 || strings.TrimSpace(title.Text()) == "" {
		findings = append(findings, finding{key: KeyTitleNone, result: ResultFail})
	}

	body := doc.Find("body")
	if body.Length() == 0 || strings.TrimSpace(body.Text()) == "" {
		findings = append(findings, finding{key: KeyBodyNone, result: ResultFail})
	}

	if doc.Find("h1").Length() == 0 {
		findings = append(findings, finding{key: KeyH1None, result: ResultFail})
	}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range sel.Nodes[0].Attr {
			if strings.Contains(strings.ToLower(attr.Key), "noindex") ||
				strings.Contains(strings.ToLower(attr.Val), "noindex") {
				findings = append(findings, finding{key: KeyNoindex, result: ResultFail})
				return
			}
		}
	})

	return findings
}

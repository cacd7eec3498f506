package advice

import "strings"

// commandStrings holds the advice text for one command: a base entry per
// severity plus optional entries keyed by an intermediate finding key.
type commandStrings struct {
	base  map[Severity]string
	keyed map[string]map[Severity]string
}

// contentFor resolves advice text for a severity, preferring a keyed entry
// when extraKey matches one. ESSENTIAL shares URGENT's text. Unmatched
// lookups return the empty string; classification never fails on a missing
// string.
func (c commandStrings) contentFor(severity Severity, extraKey string) string {
	if severity == SeverityEssential {
		severity = SeverityUrgent
	}
	if extraKey != "" {
		if byKey, ok := c.keyed[extraKey]; ok {
			if text, ok := byKey[severity]; ok {
				return text
			}
		}
	}
	return c.base[severity]
}

// substitute replaces the first %raw_response% or %response% placeholder
// with the probe's display value. A literal, first-occurrence replace.
func substitute(text, value string) string {
	text = strings.Replace(text, "%raw_response%", value, 1)
	text = strings.Replace(text, "%response%", value, 1)
	return text
}

var localStrings = map[string]commandStrings{
	CmdLocalNetwork: {
		base: map[Severity]string{
			SeverityUrgent: "Your computer is not able to reach the internet. Check your network connection and try again, or contact your internet service provider for support",
		},
	},
	CmdLocalDNS: {
		base: map[Severity]string{
			SeverityUrgent: "Your computer was not able to look up addresses on the internet. Check your network connection, or contact your internet service provider for support",
		},
	},
}

var websiteStrings = map[string]commandStrings{
	CmdHTTPResponse: {
		base: map[Severity]string{
			SeverityUrgent: "Your website is currently responding with an invalid response code: %raw_response%. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			SeverityNotice: "Your website is currently redirecting to an address that does not contain your domain name. The current redirect location is: %raw_response% If this is an issue, contact your hosting provider.",
		},
		keyed: map[string]map[Severity]string{
			KeyNotFound: {
				SeverityUrgent: "Your website's address could not be found. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyTimedOut: {
				SeverityUrgent: "Your website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyNoResponse: {
				SeverityUrgent: "There was no response from your web server. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
		},
	},
	CmdHTTPSResponse: {
		base: map[Severity]string{
			SeverityUrgent: "Your secure website is currently responding with an invalid response code: %raw_response%. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			SeverityNotice: "Your secure website is currently redirecting to an address that does not contain your domain name. The current redirect location is %raw_response%. If this is an issue, contact your hosting provider.",
		},
		keyed: map[string]map[Severity]string{
			KeyNotFound: {
				SeverityUrgent: "Your secure website's address could not be found. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyTimedOut: {
				SeverityUrgent: "Your secure website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyNoResponse: {
				SeverityUrgent: "There was no response from your secure web server. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
		},
	},
	CmdWebsite: {
		base: map[Severity]string{
			SeverityUrgent: "Your web server is currently not accepting connections for your domain. People will not be able to reach your website using this address. Please contact your hosting provider for support",
		},
		keyed: map[string]map[Severity]string{
			KeyReplacement: {
				SeverityNotice: "Your website is currently redirecting to an address that does not contain your domain name. The current redirect location is: %response% If this is an issue, contact your hosting provider.",
			},
			KeyNotFound: {
				SeverityUrgent: "Your website's address could not be found. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyTimedOut: {
				SeverityNotice: "Your website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
				SeverityUrgent: "Your website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyNoResponse: {
				SeverityUrgent: "There was no response from your web server's connection port. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
		},
	},
	CmdSecureWebsite: {
		base: map[Severity]string{
			SeverityUrgent: "Your secure web server is currently not accepting connections for your domain. People will not be able to reach your website using this address. Please contact your hosting provider for support",
		},
		keyed: map[string]map[Severity]string{
			KeyReplacement: {
				SeverityNotice: "Your secure website is currently redirecting to an address that does not contain your domain name. The current redirect location is: %response% If this is an issue, contact your hosting provider.",
			},
			KeyNotFound: {
				SeverityUrgent: "Your secure website's address could not be found. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyTimedOut: {
				SeverityNotice: "Your secure website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
				SeverityUrgent: "Your secure website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyNoResponse: {
				SeverityUrgent: "There was no response from your secure web server's connection port. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
		},
	},
	CmdWebsiteContent: {
		base: map[Severity]string{
			SeverityUrgent: "There was a problem with your website's content. Please contact your website designer for support",
		},
		keyed: map[string]map[Severity]string{
			KeyHeadNone: {
				SeverityNotice: "Your website's home page has no \"HEAD\" section, which search engines use to rank your website. Please contact your website designer for support",
			},
			KeyTitleNone: {
				SeverityUrgent: "Your website's home page has no title, which will hurt your search engine rankings and looks unprofessional in browser tabs. Please contact your website designer for support",
			},
			KeyBodyNone: {
				SeverityUrgent: "Your website's home page has no visible content. People who visit your website will see an empty page. Please contact your website designer for support",
			},
			KeyH1None: {
				SeverityNotice: "Your website's home page has no main headline (an \"H1\" tag), which search engines use to understand your website. Please contact your website designer for support",
			},
			KeyNoindex: {
				SeverityNotice: "Your website is currently asking search engines not to index it, so it will not show up in search results. If this is not intentional, contact your website designer",
			},
			KeyNoHTML: {
				SeverityUrgent: "We could not find any page content at your website's address. People will see an empty page. Please contact your hosting provider for support",
			},
		},
	},
}

var websiteAdminStrings = map[string]commandStrings{
	CmdHTTPPort: {
		base: map[Severity]string{
			SeverityUrgent: "Your web server is currently not accepting connections for your domain. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			SeverityNotice: "Your web server is taking too long to accept connections, and people are likely to leave your website before waiting for it to load. Please contact your hosting provider for support",
		},
		keyed: map[string]map[Severity]string{
			KeyNoResponse: {
				SeverityUrgent: "There was no response from your web server's connection port. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyTimedOut: {
				SeverityNotice: "Your website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
				SeverityUrgent: "Your website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
			},
		},
	},
	CmdHTTPSPort: {
		base: map[Severity]string{
			SeverityUrgent: "Your web server is currently not accepting connections for your domain. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			SeverityNotice: "Your web server is taking too long to accept connections, and people are likely to leave your website before waiting for it to load. Please contact your hosting provider for support",
		},
		keyed: map[string]map[Severity]string{
			KeyNoResponse: {
				SeverityUrgent: "There was no response from your secure web server's connection port. People will not be able to reach your website using this address. Please contact your hosting provider for support",
			},
			KeyTimedOut: {
				SeverityNotice: "Your website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
				SeverityUrgent: "Your website took too long to respond. People may not be able to reach your website using this address. Please contact your hosting provider for support",
			},
		},
	},
	CmdDomain: {
		base: map[Severity]string{
			SeverityUrgent: "There was a problem with your domain name. Please contact your hosting provider",
			SeverityOK:     "Your domain name and its records are configured correctly",
		},
		keyed: map[string]map[Severity]string{
			KeyNoAnswer: {
				SeverityUrgent: "There was no response about your domain when we queried for its records. People will not be able to reach your website until this is resolved. Please contact your web hosting provider for support.",
			},
			KeyNoWhois: {
				SeverityUrgent: "A whois server was unable to find your domain. People will not be able to reach your website until this is resolved. Please contact your web hosting provider for support.",
			},
			KeyNSNone: {
				SeverityUrgent: "There are not any name servers defined for your domain and people will not be able to reach your website. Please contact your web hosting provider for support.",
			},
			KeyTLDIsAlias: {
				SeverityUrgent: "Your top-level domain is currently an alias. Please contact your web hosting provider for support.",
			},
			KeyWWWCnameANone: {
				SeverityUrgent: "Your \"WWW\" address doesn't have an \"A\" record or a \"CNAME\" which means that people who try to reach your domain using \"www\" will not get to your website. Please contact your hosting provider for support.",
			},
			KeyMXNone: {
				SeverityUrgent: "You have no mail servers defined for your domain name, which means people will not be able to send you emails using your company's unique name. Please contact your web hosting provider for support.",
			},
			KeyTLDANone: {
				SeverityUrgent: "Your top-level domain is not an A record. Please contact your web hosting provider for support.",
			},
			KeyDomainExpired: {
				SeverityUrgent: "Your domain name has expired and you may lose access to your website and domain. Please contact your web hosting provider for support.",
			},
			KeyDomainWillExpir: {
				SeverityNotice: "Your domain name will expire soon. To avoid losing access to your website and domain, contact your web hosting provider.",
				SeverityUrgent: "Your domain name will expire soon. To avoid losing access to your website and domain, contact your web hosting provider.",
			},
		},
	},
}

// stringsForCategory returns the table for a category. The addon category
// has no table; lookups against the zero value yield empty content.
func stringsForCategory(category Category) map[string]commandStrings {
	switch category {
	case CategoryLocal:
		return localStrings
	case CategoryWebsite:
		return websiteStrings
	case CategoryWebsiteAdmin:
		return websiteAdminStrings
	default:
		return nil
	}
}

// contentFor looks up advice text for a category, command, severity and
// optional intermediate key.
func contentFor(category Category, command string, severity Severity, extraKey string) string {
	table := stringsForCategory(category)
	if table == nil {
		return ""
	}
	return table[command].contentFor(severity, extraKey)
}

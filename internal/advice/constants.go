package advice

// ResultTag is the outcome of a single probe.
type ResultTag string

const (
	// ResultPass means the test succeeded and no advice is needed.
	ResultPass ResultTag = "PASS"
	// ResultFail means the test failed and advice may be needed.
	ResultFail ResultTag = "FAIL"
	// ResultPunt means the result is not binary and a category advisor
	// decides what, if anything, to report.
	ResultPunt ResultTag = "PUNT"
	// ResultUntested is the initial state before a probe has run.
	ResultUntested ResultTag = "UNTESTED"
)

// Severity ranks how urgently a result needs the site owner's attention.
// Greater values are more urgent; "greatest severity wins" throughout.
type Severity int

const (
	SeverityIgnore    Severity = -1
	SeverityOK        Severity = 0
	SeverityNotice    Severity = 1
	SeverityEssential Severity = 2
	SeverityUrgent    Severity = 3

	// SeverityDirectMessage signals that classification was bypassed and the
	// content is a literal system error message, not advice text. It sorts
	// above every normal severity.
	SeverityDirectMessage Severity = 99
	// SeverityCLI is reserved for messages addressed to the operator rather
	// than the site owner. Sorts the same as a direct message.
	SeverityCLI Severity = 99
)

// Name returns the string used for a severity in advice string tables.
func (s Severity) Name() string {
	switch s {
	case SeverityIgnore:
		return "IGNORE"
	case SeverityOK:
		return "OK"
	case SeverityNotice:
		return "NOTICE"
	case SeverityEssential:
		return "ESSENTIAL"
	case SeverityUrgent:
		return "URGENT"
	case SeverityDirectMessage:
		return "DIRECT_MESSAGE"
	default:
		return "IGNORE"
	}
}

// Category selects which advisor classifies a command's results.
type Category string

const (
	CategoryLocal        Category = "local"
	CategoryWebsite      Category = "website"
	CategoryWebsiteAdmin Category = "website-admin"
	CategoryAddon        Category = "addon"
)

// Command names understood by the runner.
const (
	CmdLocalNetwork   = "local-network"
	CmdLocalDNS       = "local-dns"
	CmdHTTPPort       = "http-port"
	CmdHTTPSPort      = "https-port"
	CmdDomain         = "domain"
	CmdHTTPResponse   = "http-response"
	CmdHTTPSResponse  = "https-response"
	CmdWebsite        = "website"
	CmdSecureWebsite  = "secure-website"
	CmdWebsiteContent = "website-content"
)

// commandCategories maps each built-in command to its advisor category.
var commandCategories = map[string]Category{
	CmdLocalNetwork:   CategoryLocal,
	CmdLocalDNS:       CategoryLocal,
	CmdHTTPPort:       CategoryWebsiteAdmin,
	CmdHTTPSPort:      CategoryWebsiteAdmin,
	CmdDomain:         CategoryWebsiteAdmin,
	CmdHTTPResponse:   CategoryWebsite,
	CmdHTTPSResponse:  CategoryWebsite,
	CmdWebsite:        CategoryWebsite,
	CmdSecureWebsite:  CategoryWebsite,
	CmdWebsiteContent: CategoryWebsite,
}

// CategoryForCommand returns the category a command belongs to. Unknown
// commands fall into the addon category.
func CategoryForCommand(command string) Category {
	if c, ok := commandCategories[command]; ok {
		return c
	}
	return CategoryAddon
}

// ValidCommands lists the built-in commands for input validation.
var ValidCommands = []string{
	CmdLocalNetwork,
	CmdLocalDNS,
	CmdHTTPPort,
	CmdHTTPSPort,
	CmdDomain,
	CmdHTTPResponse,
	CmdHTTPSResponse,
	CmdWebsite,
	CmdSecureWebsite,
	CmdWebsiteContent,
}

// DefaultCommands is the set the "all" command runs, in order.
var DefaultCommands = []string{
	CmdLocalNetwork,
	CmdLocalDNS,
	CmdWebsite,
	CmdSecureWebsite,
	CmdDomain,
	CmdWebsiteContent,
}

// IsValidCommand reports whether command is a built-in command name.
func IsValidCommand(command string) bool {
	for _, c := range ValidCommands {
		if c == command {
			return true
		}
	}
	return false
}

// Intermediate keys attached to findings by the rule sets. They select
// specific advice strings and drive NOTICE-vs-URGENT decisions.
const (
	KeyNSNone          = "NS_NONE"
	KeyTLDIsAlias      = "TLD_IS_ALIAS"
	KeyWWWCnameANone   = "WWW_CNAME_A_NONE"
	KeyMXNone          = "MX_NONE"
	KeyTLDANone        = "TLD_A_NONE"
	KeyDomainExpired   = "DOMAIN_EXPIRED"
	KeyDomainWillExpir = "DOMAIN_WILL_EXPIRE"

	KeyHeadNone  = "HEAD_NONE"
	KeyTitleNone = "TITLE_NONE"
	KeyBodyNone  = "BODY_NONE"
	KeyH1None    = "H1_NONE"
	KeyNoindex   = "NOINDEX"

	KeyReplacement = "REPLACEMENT"

	KeyNoResponse = "NO_RESPONSE"
	KeyNotFound   = "NOT_FOUND"
	KeyTimedOut   = "TIMED_OUT"
	KeyNoAnswer   = "NO_ANSWER"
	KeyNoWhois    = "NO_WHOIS"
	KeyNoHTML     = "NO_HTML"
)

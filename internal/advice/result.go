package advice

import "strconv"

// LatencyStats carries TCP connect timing from a port-availability probe.
// Times are in milliseconds.
type LatencyStats struct {
	Attempts int     `json:"attempts"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Avg      float64 `json:"avg"`
}

// DomainRecords is the resolved record set a domain command accumulates
// across its query sequence, plus registration expiry from whois.
type DomainRecords struct {
	NS       []string `json:"ns"`
	TLDCname []string `json:"tld_cname"`
	WWWCname []string `json:"www_cname"`
	MX       []string `json:"mx"`
	TLDA     []string `json:"tld_a"`
	WWWA     []string `json:"www_a"`

	Expiration    string `json:"expiration,omitempty"`
	DaysTilExpiry int    `json:"days_til_expiry"`
	ExpiryKnown   bool   `json:"expiry_known"`
}

// RawResponse is the probe-specific payload of an item result. Only the
// fields relevant to the originating probe are populated.
type RawResponse struct {
	// Tag is a probe sub-tag (NO_RESPONSE, NOT_FOUND, TIMED_OUT, NO_ANSWER,
	// NO_WHOIS, NO_HTML) or a raw failure reason when no tag fits.
	Tag string `json:"tag,omitempty"`

	// Message is non-empty only when the probe infrastructure itself failed.
	// A non-empty message forces the direct-message classification path.
	Message string `json:"message,omitempty"`

	StatusCode       int            `json:"status_code,omitempty"`
	RedirectLocation string         `json:"redirect_location,omitempty"`
	Latency          *LatencyStats  `json:"latency,omitempty"`
	Records          *DomainRecords `json:"records,omitempty"`
	HTML             string         `json:"html,omitempty"`
}

// Display returns the value substituted for %raw_response% and %response%
// placeholders in advice text.
func (r RawResponse) Display() string {
	if r.RedirectLocation != "" {
		return r.RedirectLocation
	}
	if r.StatusCode != 0 {
		return strconv.Itoa(r.StatusCode)
	}
	return r.Tag
}

// ItemResult is one probe outcome recorded against a run.
type ItemResult struct {
	Command      string      `json:"command"`
	Category     Category    `json:"category"`
	Result       ResultTag   `json:"result"`
	ResultTags   []ResultTag `json:"result_tags"`
	RawResponse  RawResponse `json:"raw_response"`
	ResponseTime float64     `json:"response_time"`
}

// NewItemResult returns an untested item for a command, with the category
// derived from the command taxonomy and the unmeasured time sentinel set.
func NewItemResult(command string) ItemResult {
	return ItemResult{
		Command:      command,
		Category:     CategoryForCommand(command),
		Result:       ResultUntested,
		ResultTags:   []ResultTag{},
		ResponseTime: -1,
	}
}

// ActionItem is a user-facing entry derived from an item result whose
// severity exceeded OK.
type ActionItem struct {
	Category Category  `json:"category"`
	Command  string    `json:"command"`
	Result   ResultTag `json:"result"`
	Severity Severity  `json:"severity"`
	Content  string    `json:"content"`
}

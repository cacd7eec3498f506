// Package advice turns raw probe outcomes into classified, user-facing
// guidance. Each probe records an ItemResult against a Run; a category
// advisor maps the result to a severity and advice text; Finalize folds
// everything into a serializable Report whose headline is the greatest
// severity seen.
package advice

import (
	"github.com/costmo/validpoint/internal/config"
)

// Run accumulates item results for one domain while its commands execute.
// It is the mutable working state; Finalize derives the immutable Report.
type Run struct {
	cfg *config.RunConfig

	items []ItemResult

	// processed marks how many items have already been classified, so
	// Finalize can be called repeatedly without double-counting.
	processed int

	actions          []ActionItem
	greatestSeverity Severity
	greatestResult   ResultTag
}

// NewRun starts an empty run for the configured domain.
func NewRun(cfg *config.RunConfig) *Run {
	return &Run{
		cfg:              cfg,
		greatestSeverity: SeverityIgnore,
		greatestResult:   ResultUntested,
	}
}

// Config returns the run's configuration.
func (r *Run) Config() *config.RunConfig {
	return r.cfg
}

// RecordItem adds a completed probe outcome to the run. Items are value
// copies; nothing mutates them after recording.
func (r *Run) RecordItem(item ItemResult) {
	r.items = append(r.items, item)
}

// Items returns the recorded results in arrival order.
func (r *Run) Items() []ItemResult {
	return r.items
}

// GreatestSeverity returns the worst severity classified so far. Items
// recorded since the last Finalize are not yet counted.
func (r *Run) GreatestSeverity() Severity {
	return r.greatestSeverity
}

// TestResult is the classified outcome of a run: the action list users see,
// plus the raw per-item results when they were requested.
type TestResult struct {
	Results []ItemResult `json:"results,omitempty"`
	Actions []ActionItem `json:"actions"`
}

// Report is the serializable summary of a run.
type Report struct {
	Domain           string            `json:"domain"`
	Name             string            `json:"name,omitempty"`
	GreatestSeverity Severity          `json:"greatest_severity"`
	Result           ResultTag         `json:"result"`
	TestResult       TestResult        `json:"test_result"`
	Config           *config.RunConfig `json:"config,omitempty"`
}

// Finalize classifies any items recorded since the previous call and
// returns the current report. stripConfig omits the run configuration from
// the report; stripScratch omits the per-item results, leaving only the
// action list. Calling Finalize again without new items returns the same
// report.
func (r *Run) Finalize(stripConfig, stripScratch bool) Report {
	for ; r.processed < len(r.items); r.processed++ {
		item := r.items[r.processed]
		a := Classify(item, r.cfg)

		if a.Severity >= r.greatestSeverity {
			r.greatestSeverity = a.Severity
			r.greatestResult = a.Result
		}

		// A severity at or below OK needs no action from the user.
		if a.Severity > SeverityOK {
			r.actions = append(r.actions, ActionItem{
				Category: item.Category,
				Command:  item.Command,
				Result:   a.Result,
				Severity: a.Severity,
				Content:  a.Content,
			})
		}
	}

	report := Report{
		GreatestSeverity: r.greatestSeverity,
		Result:           r.greatestResult,
		TestResult: TestResult{
			Actions: r.actions,
		},
	}
	if report.TestResult.Actions == nil {
		report.TestResult.Actions = []ActionItem{}
	}
	if r.cfg != nil {
		report.Domain = r.cfg.Domain
		report.Name = r.cfg.Name
		if !stripConfig {
			report.Config = r.cfg
		}
	}
	if !stripScratch {
		report.TestResult.Results = r.items
	}
	return report
}

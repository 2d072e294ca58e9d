package domain

import "time"

// Outcome is the terminal state of a single test
type Outcome int

const (
	// Passed means the body returned normally
	Passed Outcome = iota
	// Failed means an assertion aborted the body
	Failed
	// Errored means the body panicked with something other than an assertion failure
	Errored
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// RunResult represents the result of executing one test case
type RunResult struct {
	Name     string        // Test name as registered
	Outcome  Outcome       // Passed, Failed or Errored
	Detail   string        // Failure description, empty when Passed
	Extra    string        // Additional diagnostic lines (values, diff, stack)
	Duration time.Duration // Time spent in the body
}

// Summary is the tally of one run
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Errored  int
	Duration time.Duration
}

// Add counts a result into the summary.
func (s *Summary) Add(r RunResult) {
	s.Total++
	switch r.Outcome {
	case Passed:
		s.Passed++
	case Failed:
		s.Failed++
	case Errored:
		s.Errored++
	}
}

// Unsuccessful returns the number of tests that did not pass.
func (s Summary) Unsuccessful() int {
	return s.Failed + s.Errored
}

// OK reports whether every test that ran passed. An empty run is OK.
func (s Summary) OK() bool {
	return s.Unsuccessful() == 0
}

// FailureRate returns the percentage of unsuccessful tests, 0 for an empty run.
func (s Summary) FailureRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return 100.0 * float64(s.Unsuccessful()) / float64(s.Total)
}

// RunMeta contains metadata about a saved run
type RunMeta struct {
	RunID           int64   `json:"run_id,omitempty"` // Set by storages that keep history
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	ErroredTests    int     `json:"errored_tests"`
	FailureRate     float64 `json:"failure_rate"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunReport is the complete persisted structure of one run
type RunReport struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}

// NewRunReport builds the persisted form of a run from its summary and results.
func NewRunReport(summary Summary, results []RunResult, at time.Time) *RunReport {
	report := &RunReport{
		Meta: RunMeta{
			TotalTests:      summary.Total,
			PassedTests:     summary.Passed,
			FailedTests:     summary.Failed,
			ErroredTests:    summary.Errored,
			FailureRate:     summary.FailureRate(),
			Duration:        summary.Duration.String(),
			DurationSeconds: summary.Duration.Seconds(),
			Timestamp:       at.Format(time.RFC3339),
		},
		Details: []TestFailure{},
	}
	for i, r := range results {
		if r.Outcome == Passed {
			continue
		}
		report.Details = append(report.Details, TestFailure{
			TestName: r.Name,
			Position: i,
			Outcome:  r.Outcome.String(),
			Message:  r.Detail,
			Extra:    r.Extra,
		})
	}
	return report
}

// FailedNames returns the set of test names that did not pass in the report.
func (r *RunReport) FailedNames() map[string]struct{} {
	names := make(map[string]struct{}, len(r.Details))
	for _, d := range r.Details {
		names[d.TestName] = struct{}{}
	}
	return names
}

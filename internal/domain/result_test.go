package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSummary_Add(t *testing.T) {
	var s Summary
	s.Add(RunResult{Name: "a", Outcome: Passed})
	s.Add(RunResult{Name: "b", Outcome: Failed, Detail: "1 == 2"})
	s.Add(RunResult{Name: "c", Outcome: Errored, Detail: "boom"})

	require.Equal(t, 3, s.Total)
	require.Equal(t, 1, s.Passed)
	require.Equal(t, 1, s.Failed)
	require.Equal(t, 1, s.Errored)
	require.Equal(t, 2, s.Unsuccessful())
	require.False(t, s.OK())
}

func TestSummary_FailureRate(t *testing.T) {
	tests := []struct {
		name     string
		summary  Summary
		expected float64
	}{
		{name: "empty run", summary: Summary{}, expected: 0},
		{name: "all passed", summary: Summary{Total: 4, Passed: 4}, expected: 0},
		{name: "half failed", summary: Summary{Total: 2, Passed: 1, Failed: 1}, expected: 50},
		{name: "errored counts", summary: Summary{Total: 4, Passed: 1, Failed: 1, Errored: 2}, expected: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, tt.summary.FailureRate(), 1e-9)
		})
	}
}

func TestSummary_EmptyIsOK(t *testing.T) {
	require.True(t, Summary{}.OK())
}

func TestNewRunReport(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	results := []RunResult{
		{Name: "first", Outcome: Passed},
		{Name: "second", Outcome: Failed, Detail: "1 == 2", Extra: "Actual values: 1 != 2"},
	}
	summary := Summary{Total: 2, Passed: 1, Failed: 1, Duration: 1500 * time.Millisecond}

	report := NewRunReport(summary, results, at)

	require.Equal(t, 2, report.Meta.TotalTests)
	require.Equal(t, 1, report.Meta.FailedTests)
	require.InDelta(t, 50.0, report.Meta.FailureRate, 1e-9)
	require.Equal(t, "2026-10-18T12:00:00Z", report.Meta.Timestamp)
	require.Len(t, report.Details, 1)
	require.Equal(t, TestFailure{
		TestName: "second",
		Position: 1,
		Outcome:  "failed",
		Message:  "1 == 2",
		Extra:    "Actual values: 1 != 2",
	}, report.Details[0])

	_, ok := report.FailedNames()["second"]
	require.True(t, ok)
}

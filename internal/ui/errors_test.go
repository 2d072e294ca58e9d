package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"microtest/internal/domain"
	"microtest/internal/storage"
)

func sampleReport() *domain.RunReport {
	return &domain.RunReport{
		Meta: domain.RunMeta{Timestamp: "2026-10-18T09:30:00Z"},
		Details: []domain.TestFailure{
			{TestName: "subtracts", Position: 1, Outcome: "failed", Message: "1 == 2", Extra: "Actual values: 1 != 2"},
			{TestName: "divides", Position: 2, Outcome: "errored", Message: "runtime error: integer divide by zero"},
		},
	}
}

func TestErrorViewer_NoFailures(t *testing.T) {
	var out bytes.Buffer
	viewer := NewErrorViewer(storage.NopStorage{}, &out, true)

	require.NoError(t, viewer.View(&domain.RunReport{}))
	require.Equal(t, "✓ No test failures found!\n", out.String())
}

func TestToggleResolved(t *testing.T) {
	report := sampleReport()
	require.Equal(t, 2, countUnresolved(report))

	toggleResolved(report, 0)
	require.True(t, report.Details[0].Resolved)
	require.Equal(t, 1, countUnresolved(report))
	require.Contains(t, headerText(report), "(2 total, 1 unresolved)")

	toggleResolved(report, 0)
	require.False(t, report.Details[0].Resolved)
}

func TestListItemText(t *testing.T) {
	report := sampleReport()
	require.Equal(t, "[yellow]1.[white] subtracts", listItemText(report.Details[0], 0))

	report.Details[0].Resolved = true
	require.Equal(t, "[gray]✓ [yellow]1.[gray] subtracts[white]", listItemText(report.Details[0], 0))

	require.Equal(t, "[yellow]3.[white] Test 3", listItemText(domain.TestFailure{}, 2))
}

func TestFormatFailureDetails(t *testing.T) {
	report := sampleReport()

	failed := formatFailureDetails(report.Details[0])
	require.Contains(t, failed, "Assertion failed:")
	require.Contains(t, failed, "1 == 2")
	require.Contains(t, failed, "Actual values: 1 != 2")

	errored := formatFailureDetails(report.Details[1])
	require.Contains(t, errored, "Panic:")
	require.NotContains(t, errored, "Details:")
}

func TestFormatFailureStats(t *testing.T) {
	stats := formatFailureStats(sampleReport(), 1)
	require.Contains(t, stats, "#3")
	require.Contains(t, stats, "divides")
	require.Contains(t, stats, "errored")
}

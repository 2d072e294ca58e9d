package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"microtest/internal/domain"
	"microtest/internal/storage"
)

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
	out     io.Writer
	noColor bool
}

// NewErrorViewer creates a new ErrorViewer; resolved markers are persisted to st
func NewErrorViewer(st storage.Storage, out io.Writer, noColor bool) *ErrorViewer {
	return &ErrorViewer{
		storage: st,
		out:     out,
		noColor: noColor,
	}
}

// View displays the failures of report in an interactive TUI
func (ev *ErrorViewer) View(report *domain.RunReport) error {
	if len(report.Details) == 0 {
		NewFormatter(ev.out, ev.out, ev.noColor).green.Fprintln(ev.out, "✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i := range report.Details {
		list.AddItem(listItemText(report.Details[i], i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(report))
	}
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(report.Details) {
			statsView.SetText(formatFailureStats(report, index))
			detailsView.SetText(formatFailureDetails(report.Details[index]))
		}
	}
	updateHeader()

	var saveErr error
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(report.Details) {
					toggleResolved(report, index)
					list.SetItemText(index, listItemText(report.Details[index], index), "")
					updateHeader()
					updateDetails()
					saveErr = ev.storage.SaveResolved(report)
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("save resolved status: %w", saveErr)
	}
	return nil
}

func toggleResolved(report *domain.RunReport, index int) {
	report.Details[index].Resolved = !report.Details[index].Resolved
}

func countUnresolved(report *domain.RunReport) int {
	count := 0
	for _, d := range report.Details {
		if !d.Resolved {
			count++
		}
	}
	return count
}

func headerText(report *domain.RunReport) string {
	return fmt.Sprintf(" Test Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
		len(report.Details), countUnresolved(report))
}

func listItemText(failure domain.TestFailure, index int) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Test %d", index+1)
	}
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureDetails formats a failure for display using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	label := "Assertion failed"
	if failure.Outcome == domain.Errored.String() {
		label = "Panic"
	}
	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", tview.Escape(failure.TestName))
	fmt.Fprintf(&b, "[yellow]%s:[white]\n%s\n\n", label, tview.Escape(failure.Message))

	if failure.Extra != "" {
		lines := strings.Split(failure.Extra, "\n")
		fmt.Fprintf(&b, "[yellow]Details:[white]\n")
		for i, line := range lines {
			if i == 20 {
				fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", len(lines)-20)
				break
			}
			fmt.Fprintf(&b, "  %s\n", tview.Escape(line))
		}
	}
	return b.String()
}

// formatFailureStats formats the stats header for a failure
func formatFailureStats(report *domain.RunReport, index int) string {
	failure := report.Details[index]
	return fmt.Sprintf("[cyan]test:[white] [yellow]#%d[white] %s  [cyan]outcome:[white] %s  [cyan]run:[white] %s\n",
		failure.Position+1, tview.Escape(failure.TestName), failure.Outcome, report.Meta.Timestamp)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ebt/internal/domain"
)

// Viewer displays a stored run in an interactive TUI
type Viewer interface {
	View(record *domain.RunRecord) error
}

// FailureViewer displays the failed examples of a stored run in an
// interactive TUI
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

// View opens the viewer for the failed examples of record
func (fv *FailureViewer) View(record *domain.RunRecord) error {
	failed := record.Failed()
	if len(failed) == 0 {
		color.Green("✓ No failed examples in the last run (%d tested)", record.Meta.TotalExamples)
		return nil
	}

	app := tview.NewApplication()

	// Failed examples (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, result := range failed {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s", i+1, tview.Escape(result.Config.Name)), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	// Build error and failing validations (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Failed examples (%d of %d) | ↑↓ navigate, → details, ← back, q to exit ",
			len(failed), record.Meta.TotalExamples))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failed) {
			statsView.SetText(FormatFailureStats(failed[index]))
			detailsView.SetText(FormatFailureDetails(failed[index])).ScrollToBeginning()
		}
	}

	quit := func(event *tcell.EventKey) bool {
		return event.Key() == tcell.KeyCtrlC || (event.Key() == tcell.KeyRune && (event.Rune() == 'q' || event.Rune() == 'Q'))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if quit(event) || event.Key() == tcell.KeyEsc {
			app.Stop()
			return nil
		}
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if quit(event) {
			app.Stop()
			return nil
		}
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
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
	return nil
}

// FormatFailureStats formats the one-line header of a failed example using
// tview color tags
func FormatFailureStats(result domain.TestResult) string {
	status := "[red]build failed[white]"
	if result.BuildPassed {
		status = fmt.Sprintf("[yellow]%d/%d validations passed[white]", result.ValidationsPassed, result.ValidationsTotal)
	}
	return fmt.Sprintf("[cyan]example:[white] [yellow]%s[white] (%s) | %s\n",
		tview.Escape(result.Name), tview.Escape(result.Config.Output), status)
}

// FormatFailureDetails formats a failed example for display using tview
// color tags
func FormatFailureDetails(result domain.TestResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", tview.Escape(result.Config.Name))
	if result.Config.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", tview.Escape(result.Config.Description))
	}
	fmt.Fprintf(&b, "[cyan]Command:[white] %s\n", tview.Escape(result.Config.Command))
	fmt.Fprintf(&b, "[cyan]Timeout:[white] %dms\n\n", result.Config.TimeoutMS)

	if !result.BuildPassed {
		fmt.Fprintf(&b, "[yellow]Build error:[white]\n%s\n", tview.Escape(result.Error))
		return b.String()
	}

	fmt.Fprintf(&b, "[cyan]Build time:[white] %dms\n\n", result.BuildTime.Milliseconds())
	fmt.Fprintf(&b, "[yellow]Failed validations:[white]\n")
	for _, v := range result.FailedValidations() {
		location := v.Kind
		if v.File != "" {
			location = fmt.Sprintf("%s %s", v.Kind, v.File)
		}
		fmt.Fprintf(&b, "  [red]-[white] %s [gray](%s)[white]\n", tview.Escape(v.Message), tview.Escape(location))
	}
	return b.String()
}

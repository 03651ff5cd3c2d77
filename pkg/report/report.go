// Package report renders task outcomes onto the shared console.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bastiangx/wordcheck/pkg/check"
	"github.com/bastiangx/wordcheck/pkg/console"
	"github.com/bastiangx/wordcheck/pkg/rank"
)

// Report styles.
const (
	StylePlain = "plain"
	StyleTable = "table"
)

// Options selects how reports look.
type Options struct {
	Style string
	Color bool
}

// TextReporter writes human-readable reports while owning the console.
type TextReporter struct {
	console *console.Console
	opts    Options
	header  lipgloss.Style
	failure lipgloss.Style
}

// NewText returns a reporter writing to c.
func NewText(c *console.Console, opts Options) *TextReporter {
	if opts.Style != StyleTable {
		opts.Style = StylePlain
	}
	return &TextReporter{
		console: c,
		opts:    opts,
		header: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		failure: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
	}
}

// Report prints the ranked mismatches of a finished task.
func (r *TextReporter) Report(task *check.Task) error {
	var buf bytes.Buffer
	buf.WriteString(r.paint(r.header, fmt.Sprintf("Task completed for document: %s, reference list: %s",
		task.Document, task.Reference)))
	buf.WriteString("\nTop 5 mismatches:\n")

	entries := task.Mismatches.Entries()
	switch {
	case len(entries) == 0:
		buf.WriteString("No mismatches found.\n")
	case r.opts.Style == StyleTable:
		buf.WriteString(renderTable(entries))
		buf.WriteByte('\n')
	default:
		for _, e := range entries {
			fmt.Fprintf(&buf, "%s: %s, %d\n", e.Term, e.Correction, e.Frequency)
		}
	}
	fmt.Fprintf(&buf, "Total mismatches: %d\n", task.TotalMismatches)

	return r.flush(buf.Bytes())
}

// Fail prints why a task ended early.
func (r *TextReporter) Fail(task *check.Task, err error) error {
	var buf bytes.Buffer
	buf.WriteString(r.paint(r.failure, "Error: "+err.Error()))
	fmt.Fprintf(&buf, "\nTask for %s terminated.\n", task.Document)
	return r.flush(buf.Bytes())
}

func (r *TextReporter) flush(msg []byte) error {
	return r.console.Borrow(func(w io.Writer) error {
		_, err := w.Write(msg)
		return err
	})
}

func (r *TextReporter) paint(style lipgloss.Style, s string) string {
	if !r.opts.Color {
		return s
	}
	return style.Render(s)
}

func renderTable(entries []rank.Entry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Mismatch", "Correction", "Frequency"})
	for i, e := range entries {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), e.Term, e.Correction, e.Frequency})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

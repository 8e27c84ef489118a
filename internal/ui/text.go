// Package ui renders analysis reports and progress for terminals.
package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tessera/internal/config"
	"tessera/internal/driver"
)

// TextOptions controls RenderText.
type TextOptions struct {
	Color bool
	Width int // 0 means 100 columns
}

type textStyles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	yes     lipgloss.Style
	no      lipgloss.Style
	dim     lipgloss.Style
}

func newTextStyles(color bool) textStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return textStyles{heading: plain, label: plain, yes: plain, no: plain, dim: plain}
	}
	return textStyles{
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		label:   lipgloss.NewStyle().Bold(true),
		yes:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		no:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// RenderText writes a human-readable summary of r. Diagnostics are not
// included; the caller prints them with diag.Pretty.
func RenderText(w io.Writer, r *driver.Report, opts TextOptions) error {
	width := opts.Width
	if width <= 0 {
		width = 100
	}
	st := newTextStyles(opts.Color)
	var b strings.Builder

	nameWidth := 0
	for _, f := range r.Funcs {
		nameWidth = max(nameWidth, runewidth.StringWidth(f.Name))
	}
	nameWidth = min(nameWidth, width/3)

	for i, f := range r.Funcs {
		if i > 0 {
			b.WriteString("\n")
		}
		head := fmt.Sprintf("%s %s", padRight(f.Name, nameWidth), st.dim.Render("("+f.Kind+")"))
		b.WriteString(st.heading.Render(head))
		b.WriteString("\n")
		renderFunc(&b, f, r.Checks, st, width)
	}
	if len(r.Unreachable) > 0 {
		b.WriteString("\n")
		b.WriteString(st.heading.Render("unreachable"))
		b.WriteString("\n")
		for _, name := range r.Unreachable {
			fmt.Fprintf(&b, "  %s\n", truncate(name, width-2))
		}
	}
	if r.Dropped > 0 {
		fmt.Fprintf(&b, "\n%s\n", st.dim.Render(fmt.Sprintf("%d diagnostics dropped", r.Dropped)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

const labelWidth = 10

func renderFunc(b *strings.Builder, f *driver.FuncReport, checks []string, st textStyles, width int) {
	line := func(label, value string) {
		fmt.Fprintf(b, "  %s %s\n", st.label.Render(padRight(label, labelWidth)), value)
	}
	bodyWidth := width - labelWidth - 3

	if slices.Contains(checks, config.CheckFlatten) {
		if f.Flattened {
			line("flattened", st.yes.Render("yes"))
		} else {
			line("flattened", st.no.Render("no"))
			for _, s := range f.NonFlat {
				line("", truncate(s, bodyWidth))
			}
		}
	}
	for i, s := range f.BlockedWrites {
		label := ""
		if i == 0 {
			label = "blocked"
		}
		line(label, truncate(s, bodyWidth))
	}
	for _, ie := range f.IndexExprs {
		line("index", truncate(ie.Expr, bodyWidth))
		line("", fmt.Sprintf("free [%s]  reduction [%s]", strings.Join(ie.Free, " "), strings.Join(ie.Reduction, " ")))
	}
	if len(f.CallTree) > 1 {
		tree := truncate(strings.Join(f.CallTree[1:], " "), bodyWidth)
		if f.Recursive {
			tree += " " + st.dim.Render("(recursive)")
		}
		line("calls", tree)
	}
}

func padRight(s string, width int) string {
	s = truncate(s, width)
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

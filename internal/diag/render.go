package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// FormatShort renders one line per diagnostic:
//
//	<severity> <ID> <func>: <message>
//
// Multi-line messages are joined with spaces. Notes follow their diagnostic
// as "note" lines when includeNotes is set.
func FormatShort(items []Diagnostic, includeNotes bool) string {
	lines := make([]string, 0, len(items))
	for _, d := range items {
		lines = append(lines, shortLine(strings.ToLower(d.Severity.String()), d.Code, d.Func, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortLine("note", d.Code, n.Func, n.Msg))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(sev string, code Code, fn, msg string) string {
	if fn == "" {
		fn = "<program>"
	}
	return fmt.Sprintf("%s %s %s: %s", sev, code.ID(), fn, strings.Join(strings.Fields(msg), " "))
}

// PrettyOpts controls Pretty.
type PrettyOpts struct {
	Color bool
	Notes bool
}

type palette struct {
	err, warn, info, note, code *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan),
		note: color.New(color.FgBlue),
		code: color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s Severity) *color.Color {
	switch s {
	case SevError:
		return p.err
	case SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes bag in human-readable form. Callers sort the bag first.
//
//	warning[ANA1001] in main: statement is not flattened
//	  note in helper: called from here
func Pretty(w io.Writer, bag *Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := p.severity(d.Severity).Sprint(strings.ToLower(d.Severity.String()))
		where := ""
		if d.Func != "" {
			where = " in " + d.Func
		}
		if _, err := fmt.Fprintf(w, "%s%s%s: %s\n", sev, p.code.Sprintf("[%s]", d.Code.ID()), where, d.Message); err != nil {
			return err
		}
		if !opts.Notes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s in %s: %s\n", p.note.Sprint("note"), n.Func, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

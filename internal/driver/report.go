package driver

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"tessera/internal/diag"
)

// Report is the result of one analysis run. It is encoded as YAML or msgpack
// and is what the report cache stores.
type Report struct {
	RunID       string             `yaml:"run" msgpack:"run"`
	Source      string             `yaml:"source,omitempty" msgpack:"source,omitempty"`
	Entries     []string           `yaml:"entries,omitempty" msgpack:"entries,omitempty"`
	Checks      []string           `yaml:"checks" msgpack:"checks"`
	Funcs       []*FuncReport      `yaml:"funcs" msgpack:"funcs"`
	Unreachable []string           `yaml:"unreachable,omitempty" msgpack:"unreachable,omitempty"`
	Diagnostics []DiagnosticRecord `yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Dropped     int                `yaml:"dropped,omitempty" msgpack:"dropped,omitempty"`
}

// FuncReport holds the query results of one function.
type FuncReport struct {
	Name string `yaml:"name" msgpack:"name"`
	Kind string `yaml:"kind" msgpack:"kind"`

	Flattened     bool     `yaml:"flattened" msgpack:"flattened"`
	NonFlat       []string `yaml:"non_flat,omitempty" msgpack:"non_flat,omitempty"`
	BlockedWrites []string `yaml:"blocked_writes,omitempty" msgpack:"blocked_writes,omitempty"`

	IndexExprs []IndexExprReport `yaml:"index_exprs,omitempty" msgpack:"index_exprs,omitempty"`

	CallTree  []string `yaml:"call_tree,omitempty" msgpack:"call_tree,omitempty"`
	Recursive bool     `yaml:"recursive,omitempty" msgpack:"recursive,omitempty"`
}

// IndexExprReport lists the index variables of one index expression.
type IndexExprReport struct {
	Expr      string   `yaml:"expr" msgpack:"expr"`
	Free      []string `yaml:"free,omitempty" msgpack:"free,omitempty"`
	Reduction []string `yaml:"reduction,omitempty" msgpack:"reduction,omitempty"`
}

type DiagnosticRecord struct {
	Severity string   `yaml:"severity" msgpack:"severity"`
	Code     string   `yaml:"code" msgpack:"code"`
	Func     string   `yaml:"func,omitempty" msgpack:"func,omitempty"`
	Message  string   `yaml:"message" msgpack:"message"`
	Notes    []string `yaml:"notes,omitempty" msgpack:"notes,omitempty"`
}

func recordOf(d diag.Diagnostic) DiagnosticRecord {
	rec := DiagnosticRecord{
		Severity: strings.ToLower(d.Severity.String()),
		Code:     d.Code.ID(),
		Func:     d.Func,
		Message:  d.Message,
	}
	for _, n := range d.Notes {
		rec.Notes = append(rec.Notes, n.Func+": "+n.Msg)
	}
	return rec
}

// Bag rebuilds the diagnostics of r, e.g. after reading a cached report.
func (r *Report) Bag() (*diag.Bag, error) {
	bag := diag.NewBag(len(r.Diagnostics))
	for _, rec := range r.Diagnostics {
		sev, err := diag.ParseSeverity(rec.Severity)
		if err != nil {
			return nil, err
		}
		code, ok := diag.ParseCode(rec.Code)
		if !ok {
			return nil, fmt.Errorf("unknown diagnostic code %q", rec.Code)
		}
		d := diag.New(sev, code, rec.Func, rec.Message)
		for _, n := range rec.Notes {
			fn, msg, _ := strings.Cut(n, ": ")
			d = d.WithNote(fn, msg)
		}
		bag.Add(d)
	}
	return bag, nil
}

// Func returns the report of the named function.
func (r *Report) Func(name string) (*FuncReport, bool) {
	for _, f := range r.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Format selects a machine-readable report encoding.
type Format string

const (
	FormatText    Format = "text"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat converts a string to Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatMsgpack:
		return FormatMsgpack, nil
	}
	return FormatText, fmt.Errorf("unsupported report format %q (expected text|yaml|msgpack)", s)
}

// Encode writes r as YAML or msgpack. Text output is rendered by the ui
// package.
func Encode(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(r)
	}
	return fmt.Errorf("report format %q is not a machine encoding", format)
}

// Decode reads a report written by Encode.
func Decode(data []byte, format Format) (*Report, error) {
	var r Report
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
	default:
		return nil, fmt.Errorf("report format %q is not a machine encoding", format)
	}
	return &r, nil
}

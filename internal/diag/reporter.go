package diag

import "sync"

// Reporter is the minimal contract for receiving diagnostics from passes.
type Reporter interface {
	Report(code Code, sev Severity, fn, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, fn, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, fn, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, fn, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, fn, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, fn, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, fn, msg)
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, fn, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, fn, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(fn, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(fn, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Func, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter writes into a Bag. It is safe for concurrent use when every
// producer shares the same BagReporter value.
type BagReporter struct {
	Bag *Bag
	mu  *sync.Mutex
}

// NewBagReporter returns a reporter that serialises writes to bag.
func NewBagReporter(bag *Bag) BagReporter {
	return BagReporter{Bag: bag, mu: &sync.Mutex{}}
}

func (r BagReporter) Report(code Code, sev Severity, fn, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	if r.mu != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Func: fn, Notes: notes,
	})
}

package diag

type Note struct {
	Func string
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Func     string
	Notes    []Note
}

func New(sev Severity, code Code, fn, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Func:     fn,
		Message:  msg,
	}
}

func NewError(code Code, fn, msg string) Diagnostic {
	return New(SevError, code, fn, msg)
}

func (d Diagnostic) WithNote(fn, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Func: fn, Msg: msg})
	return d
}

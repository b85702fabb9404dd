package diag

import (
	"monoforce/internal/source"
)

// Note is a secondary span with a short message.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces the bytes under Span with NewText.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested source correction.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding produced while expanding a file.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// New builds a diagnostic without notes or fixes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError is a shortcut for SevError diagnostics.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

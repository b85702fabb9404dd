package diag

import "monoforce/internal/source"

// NewDedupReporter wraps next so each distinct diagnostic reaches it once.
// Two reports are the same when code, severity, primary span and message
// match; notes and fixes are not compared.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next}
}

// DedupReporter is the filter built by NewDedupReporter. The zero value
// drops nothing and forwards nowhere.
type DedupReporter struct {
	next Reporter
	seen map[reportKey]struct{}
}

type reportKey struct {
	code Code
	sev  Severity
	at   source.Span
	msg  string
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil || r.next == nil {
		return
	}
	k := reportKey{code: code, sev: sev, at: primary, msg: msg}
	if _, dup := r.seen[k]; dup {
		return
	}
	if r.seen == nil {
		r.seen = make(map[reportKey]struct{})
	}
	r.seen[k] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}

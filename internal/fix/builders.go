package fix

import (
	"monoforce/internal/diag"
	"monoforce/internal/source"
)

// DeleteSpan builds a fix removing span.
func DeleteSpan(title string, span source.Span) diag.Fix {
	return diag.Fix{Title: title, Edits: []diag.FixEdit{{Span: span}}}
}

package parser

import (
	"strings"

	"monoforce/internal/diag"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

// DefaultNames are the attribute and macro paths recognised out of the box.
var DefaultNames = []string{"mono", "mono_macro::mono"}

type Options struct {
	// Attributes lists attribute paths that trigger the attribute transform.
	// Empty means DefaultNames.
	Attributes []string
	// PathMacros lists macro paths (without `!`) that trigger the path
	// transform. Empty means DefaultNames.
	PathMacros []string
	Reporter   diag.Reporter // может быть nil
}

// normalizePath turns "::mono_macro :: mono" into "mono_macro::mono".
func normalizePath(p string) string {
	segs := strings.Split(p, "::")
	out := segs[:0]
	for _, s := range segs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, token.IdentKey(s))
	}
	return strings.Join(out, "::")
}

func nameSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		names = DefaultNames
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[normalizePath(n)] = struct{}{}
	}
	return set
}

func (s *scanner) report(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(s.opts.Reporter, code, sp, msg)
}

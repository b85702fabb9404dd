package mono_test

import (
	"strings"
	"testing"

	"monoforce/internal/lexer"
	"monoforce/internal/mono"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.rs", []byte(src))
	return lexer.New(fs.Get(id), lexer.Options{}).All()
}

func mustArgs(t *testing.T, src string) mono.SubstList {
	t.Helper()
	list, err := mono.ParseArgs(lex(t, src))
	if err != nil {
		t.Fatalf("ParseArgs(%q): %v", src, err)
	}
	return list
}

// sig builds a signature from short parameter spellings: "T", "'a", "const N".
func sig(name string, params ...string) mono.FnSig {
	out := mono.FnSig{Name: name}
	for _, p := range params {
		switch {
		case strings.HasPrefix(p, "'"):
			out.Generics = append(out.Generics, mono.GenericParam{Kind: mono.ParamLifetime, Name: p})
		case strings.HasPrefix(p, "const "):
			out.Generics = append(out.Generics, mono.GenericParam{Kind: mono.ParamConst, Name: strings.TrimPrefix(p, "const ")})
		default:
			out.Generics = append(out.Generics, mono.GenericParam{Kind: mono.ParamType, Name: p})
		}
	}
	return out
}

func decl(ref string) string {
	return "pub const _: *const () = (&" + ref + ") as *const _ as _;"
}

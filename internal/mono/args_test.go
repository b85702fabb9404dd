package mono_test

import (
	"errors"
	"testing"

	"monoforce/internal/diag"
	"monoforce/internal/mono"
)

func TestParseArgsValid(t *testing.T) {
	tests := []struct {
		src  string
		want []string // name=value
	}{
		{"", nil},
		{"T = i32", []string{"T=i32"}},
		{"T = i32,", []string{"T=i32"}},
		{"T=i32,U=i64", []string{"T=i32", "U=i64"}},
		{"'a = 'static, T = u8", []string{"'a='static", "T=u8"}},
		{"V = D, T = A, U = B", []string{"V=D", "T=A", "U=B"}},
		{"T = r#Foo", []string{"T=r#Foo"}},
		{"T = u8, T = i32", []string{"T=u8", "T=i32"}},
	}
	for _, tt := range tests {
		list := mustArgs(t, tt.src)
		if len(list) != len(tt.want) {
			t.Errorf("%q: got %d entries, want %d", tt.src, len(list), len(tt.want))
			continue
		}
		for i, e := range list {
			if got := e.Name.String() + "=" + e.Value.String(); got != tt.want[i] {
				t.Errorf("%q: entry %d = %s, want %s", tt.src, i, got, tt.want[i])
			}
		}
	}
}

func TestParseArgsKinds(t *testing.T) {
	list := mustArgs(t, "'a = 'b, T = i32")
	if list[0].Name.Kind != mono.ArgLifetime || list[0].Value.Kind != mono.ArgLifetime {
		t.Errorf("first entry should be lifetime to lifetime: %+v", list[0])
	}
	if list[1].Name.Kind != mono.ArgType || list[1].Value.Kind != mono.ArgType {
		t.Errorf("second entry should be type to type: %+v", list[1])
	}
	if list[1].Span.Start != list[1].Name.Span.Start || list[1].Span.End != list[1].Value.Span.End {
		t.Errorf("entry span %v should cover name and value", list[1].Span)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		src   string
		code  diag.Code
		found string
	}{
		{"T", diag.SynExpectEquals, "end of input"},
		{"T =", diag.SynExpectTypeOrLifetime, "end of input"},
		{"= i32", diag.SynExpectTypeOrLifetime, "`=`"},
		{"T = i32 U = u8", diag.SynExpectComma, "`U`"},
		{"T = Vec<u8>", diag.SynExpectComma, "`<`"},
		{"T = 3", diag.SynExpectTypeOrLifetime, "`3`"},
		{",", diag.SynExpectTypeOrLifetime, "`,`"},
		{"T = i32,,", diag.SynExpectTypeOrLifetime, "`,`"},
		{"T: i32", diag.SynExpectEquals, "`:`"},
	}
	for _, tt := range tests {
		_, err := mono.ParseArgs(lex(t, tt.src))
		var perr *mono.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%q: want *ParseError, got %v", tt.src, err)
			continue
		}
		if perr.Code != tt.code {
			t.Errorf("%q: code = %v, want %v", tt.src, perr.Code, tt.code)
		}
		if perr.Found != tt.found {
			t.Errorf("%q: found = %s, want %s", tt.src, perr.Found, tt.found)
		}
	}
}

func TestParseErrorSpanPointsAtBadToken(t *testing.T) {
	src := "T = i32; U = u8"
	_, err := mono.ParseArgs(lex(t, src))
	var perr *mono.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if got := src[perr.Span.Start:perr.Span.End]; got != ";" {
		t.Errorf("span text = %q, want ;", got)
	}
}

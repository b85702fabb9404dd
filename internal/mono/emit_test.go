package mono_test

import (
	"strings"
	"testing"

	"monoforce/internal/mono"
)

func TestEmitRefCast(t *testing.T) {
	args := []mono.TypeOrLifetime{
		{Kind: mono.ArgLifetime, Name: "'static"},
		{Kind: mono.ArgType, Name: "i32"},
	}
	got := mono.EmitRefCast("foo", args)
	if got != decl("foo::<'static, i32>") {
		t.Errorf("got %s", got)
	}
	if again := mono.EmitRefCast("foo", args); again != got {
		t.Errorf("output is not deterministic: %s vs %s", got, again)
	}
}

func TestEmptyArgumentList(t *testing.T) {
	exp, err := mono.ExpandAttr(sig("plain"), mustArgs(t, ""), mono.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if exp.Decl != decl("plain") {
		t.Errorf("decl = %s", exp.Decl)
	}
	if len(exp.Args) != 0 {
		t.Errorf("args = %v", exp.Args)
	}
}

func TestEndToEndBareFn(t *testing.T) {
	item := "fn foo<T, U>(t: T, u: U) {\n    let _ = (t, u);\n}\n"
	exp, err := mono.ExpandAttr(sig("foo", "T", "U"), mustArgs(t, "T = i32, U = i64"), mono.Options{})
	if err != nil {
		t.Fatal(err)
	}
	out := mono.Render(item, exp.Decl)
	want := decl("foo::<i32, i64>") + "\n" + item
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
	if !strings.HasSuffix(out, item) {
		t.Error("item must be passed through verbatim")
	}
}

func TestStackingIndependence(t *testing.T) {
	item := "fn foo<T, U>(_t: T, _u: U) {}"
	s := sig("foo", "T", "U")
	first, err := mono.ExpandAttr(s, mustArgs(t, "T=i32,U=String"), mono.Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := mono.ExpandAttr(s, mustArgs(t, "T=u8,U=i32"), mono.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.Decl == second.Decl {
		t.Fatal("stacked expansions must reference distinct instantiations")
	}
	out := mono.Render(item, first.Decl, second.Decl)
	if strings.Count(out, item) != 1 {
		t.Errorf("item must appear exactly once:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if lines[0] != decl("foo::<i32, String>") || lines[1] != decl("foo::<u8, i32>") {
		t.Errorf("unexpected declarations:\n%s", out)
	}
}

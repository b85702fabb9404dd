package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"monoforce/internal/config"
	"monoforce/internal/diag"
)

// testCommand returns a subcommand whose root carries the persistent flags
// the helpers read, pointed at a default manifest in a temp dir.
func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	manifest, err := config.WriteTemplate(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	root := &cobra.Command{Use: "monoforce"}
	root.PersistentFlags().String("config", manifest, "")
	root.PersistentFlags().Int("max-diagnostics", 100, "")
	root.PersistentFlags().String("color", "off", "")
	root.PersistentFlags().Bool("quiet", true, "")
	child := &cobra.Command{Use: "test"}
	root.AddCommand(child)
	return child
}

func TestUIModeFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"maybe", uiModeOn, true},
	}
	for _, tt := range tests {
		m := uiModeOn
		err := m.Set(tt.in)
		if (err != nil) != tt.wantErr || m != tt.want {
			t.Errorf("Set(%q) = %s, %v", tt.in, m, err)
		}
	}
	if uiModeOff.String() != "off" {
		t.Errorf("String() = %q", uiModeOff.String())
	}
	if !uiModeOn.progressView(true) || uiModeOff.progressView(false) || uiModeAuto.progressView(true) {
		t.Fatal("progressView ignores the explicit mode")
	}
}

func TestTransformAttr(t *testing.T) {
	cmd := testCommand(t)
	res, bag, _, err := transformOne(cmd, "<attr>", attrSource("T = i32, U = i64", []byte("fn foo<T, U>(t: T, u: U) {}\n")))
	if err != nil {
		t.Fatal(err)
	}
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	want := "pub const _: *const () = (&foo::<i32, i64>) as *const _ as _;\nfn foo<T, U>(t: T, u: U) {}\n"
	if string(res.Output) != want {
		t.Fatalf("output:\n%s\nwant:\n%s", res.Output, want)
	}
}

func TestTransformAttrIncomplete(t *testing.T) {
	cmd := testCommand(t)
	res, bag, _, err := transformOne(cmd, "<attr>", attrSource("T = i32", []byte("fn foo<T, U>() {}\n")))
	if err != nil {
		t.Fatal(err)
	}
	if res.Output != nil {
		t.Fatalf("expected no output, got %q", res.Output)
	}
	items := bag.Items()
	if len(items) == 0 || items[0].Code != diag.MonoIncompleteInstantiation {
		t.Fatalf("diagnostics: %v", items)
	}
}

func TestTransformPath(t *testing.T) {
	cmd := testCommand(t)
	res, bag, _, err := transformOne(cmd, "<path>", pathSource("  <Foo as Tr<i32>>::foo "))
	if err != nil {
		t.Fatal(err)
	}
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	got := strings.TrimSpace(string(res.Output))
	want := "pub const _: *const () = (&<Foo as Tr<i32>>::foo) as *const _ as _;"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestTransformPathRejectsGarbage(t *testing.T) {
	cmd := testCommand(t)
	res, bag, _, err := transformOne(cmd, "<path>", pathSource("foo bar"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Output != nil || !bag.HasErrors() {
		t.Fatalf("expected an error, output=%q diags=%v", res.Output, bag.Items())
	}
}

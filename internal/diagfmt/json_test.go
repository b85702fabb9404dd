package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"monoforce/internal/diag"
	"monoforce/internal/lexer"
	"monoforce/internal/source"
)

func duplicateBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("#[mono(T = u8, T = i8)]\nfn f<T>() {}\n")
	fileID := fs.AddVirtual("lib.rs", content)

	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.MonoDuplicateSubst, source.Span{File: fileID, Start: 15, End: 21}, "`T` is bound more than once")
	d = d.WithNote(source.Span{File: fileID, Start: 7, End: 13}, "first bound here")
	d = d.WithFix("remove the duplicate binding", diag.FixEdit{Span: source.Span{File: fileID, Start: 13, End: 21}})
	bag.Add(d)
	bag.Add(diag.NewError(diag.MonoIncompleteInstantiation, source.Span{File: fileID, Start: 24, End: 36}, "incomplete"))
	return bag, fs
}

func decode(t *testing.T, buf *bytes.Buffer) DiagnosticsOutput {
	t.Helper()
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	return output
}

func TestJSONBasic(t *testing.T) {
	bag, fs := duplicateBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	output := decode(t, &buf)
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("count = %d", output.Count)
	}

	d := output.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "MON3002" {
		t.Errorf("severity/code = %s/%s", d.Severity, d.Code)
	}
	want := LocationJSON{File: "lib.rs", StartByte: 15, EndByte: 21, StartLine: 1, StartCol: 16, EndLine: 1, EndCol: 22}
	if d.Location != want {
		t.Errorf("location = %+v, want %+v", d.Location, want)
	}
	if d.Notes != nil || d.Fixes != nil {
		t.Errorf("notes and fixes are opt-in: %+v", d)
	}
	if second := output.Diagnostics[1]; second.Location.StartLine != 2 {
		t.Errorf("second location = %+v", second.Location)
	}
}

func TestJSONWithNotesAndFixes(t *testing.T) {
	bag, fs := duplicateBag(t)
	var buf bytes.Buffer
	opts := JSONOpts{PathMode: PathModeBasename, IncludeNotes: true, IncludeFixes: true, IncludePreviews: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatal(err)
	}
	d := decode(t, &buf).Diagnostics[0]

	if len(d.Notes) != 1 || d.Notes[0].Message != "first bound here" || d.Notes[0].Location.StartByte != 7 {
		t.Errorf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	f := d.Fixes[0]
	if f.ID != "MON3002-0-15-0" || f.Title != "remove the duplicate binding" {
		t.Errorf("fix = %+v", f)
	}
	if len(f.Edits) != 1 || f.Edits[0].OldText != ", T = i8" || f.Edits[0].NewText != "" {
		t.Fatalf("edits = %+v", f.Edits)
	}
	if got := f.Edits[0].AfterLines; len(got) != 1 || got[0] != "#[mono(T = u8)]" {
		t.Errorf("after = %q", got)
	}
	if f.Edits[0].Location.StartLine != 0 {
		t.Error("positions are opt-in")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	bag, fs := duplicateBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	output := decode(t, &buf)
	if output.Count != 1 || output.Diagnostics[0].Code != "MON3002" {
		t.Errorf("output = %+v", output)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("fn f"))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0].Kind != "KwFn" || out[1].Text != "f" || out[2].Kind != "EOF" {
		t.Fatalf("tokens = %+v", out)
	}
	if len(out[1].Leading) != 1 || out[1].Leading[0] != "Space" {
		t.Errorf("leading = %v", out[1].Leading)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("'a"))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "  1: Lifetime        \"'a\" at 1:1-1:3\n") {
		t.Errorf("output = %q", got)
	}
}

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("lib.rs", []byte("fn a() {}"), 0)
	id2 := fs.Add("lib.rs", []byte("fn b() {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("lib.rs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "fn a() {}" {
		t.Errorf("old version lost: %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Error("Get on unknown id should return nil")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the '\n' itself belongs to line 1
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("off %d: got %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.rs", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadStripsBOMKeepsCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFfn a() {}\r\nfn b() {}\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "fn a() {}\r\nfn b() {}\r\n" {
		t.Errorf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileCRLF == 0 {
		t.Errorf("flags not recorded: %b", f.Flags)
	}
	if f.Newline() != "\r\n" {
		t.Errorf("Newline = %q", f.Newline())
	}
	if got := f.GetLine(2); got != "fn b() {}" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := string(f.Restore(f.Content)); got != "\xEF\xBB\xBFfn a() {}\r\nfn b() {}\r\n" {
		t.Errorf("Restore = %q", got)
	}
}

func TestRestoreWithoutBOM(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lib.rs", []byte("fn a() {}\n")))
	if f.Newline() != "\n" {
		t.Errorf("Newline = %q", f.Newline())
	}
	if got := string(f.Restore([]byte("x"))); got != "x" {
		t.Errorf("Restore = %q", got)
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("Cover across files must keep receiver, got %v", got)
	}
	if !a.Contains(Span{File: 1, Start: 12, End: 20}) {
		t.Error("expected containment")
	}
	if a.Contains(b) {
		t.Error("b leaks past a.Start")
	}
	if got := a.ShiftRight(3); got != (Span{File: 1, Start: 13, End: 23}) {
		t.Errorf("ShiftRight = %v", got)
	}
}

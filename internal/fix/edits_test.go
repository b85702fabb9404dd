package fix

import (
	"errors"
	"testing"

	"monoforce/internal/diag"
	"monoforce/internal/source"
)

func edit(start, end uint32, text string) diag.FixEdit {
	return diag.FixEdit{Span: source.Span{Start: start, End: end}, NewText: text}
}

func TestApplyEdits(t *testing.T) {
	content := []byte("#[mono(T = u8)]\nfn f<T>() {}\n")
	tests := []struct {
		name  string
		edits []diag.FixEdit
		want  string
	}{
		{"none", nil, string(content)},
		{"insert at start", []diag.FixEdit{edit(0, 0, "A\n")}, "A\n" + string(content)},
		{"insert before removal at same offset", []diag.FixEdit{edit(0, 16, ""), edit(0, 0, "X;\n")}, "X;\nfn f<T>() {}\n"},
		{"replace middle", []diag.FixEdit{edit(3, 7, "force(")}, "#[force(T = u8)]\nfn f<T>() {}\n"},
		{"two insertions keep order", []diag.FixEdit{edit(16, 16, "a"), edit(16, 16, "b")}, "#[mono(T = u8)]\nabfn f<T>() {}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyEdits(content, tt.edits)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
	if string(content) != "#[mono(T = u8)]\nfn f<T>() {}\n" {
		t.Error("input was modified")
	}
}

func TestApplyEditsEmptyContent(t *testing.T) {
	got, err := ApplyEdits(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v, want empty non-nil", got)
	}
}

func TestApplyEditsRejectsOverlap(t *testing.T) {
	_, err := ApplyEdits([]byte("abcdef"), []diag.FixEdit{edit(0, 3, ""), edit(2, 4, "x")})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("want ErrOverlap, got %v", err)
	}
	if _, err := ApplyEdits([]byte("abc"), []diag.FixEdit{edit(1, 9, "")}); err == nil {
		t.Fatal("out of range edit must fail")
	}
}

func TestSpansConflict(t *testing.T) {
	tests := []struct {
		a, b diag.FixEdit
		want bool
	}{
		{edit(0, 0, "x"), edit(0, 0, "y"), false},
		{edit(2, 2, "x"), edit(0, 4, ""), true},
		{edit(0, 0, "x"), edit(0, 4, ""), false},
		{edit(4, 4, "x"), edit(0, 4, ""), false},
		{edit(0, 3, ""), edit(3, 5, ""), false},
		{edit(0, 4, ""), edit(3, 5, ""), true},
	}
	for i, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("case %d: got %v", i, got)
		}
	}
}

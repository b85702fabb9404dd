package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"monoforce/internal/diag"
	"monoforce/internal/observ"
)

const (
	goodSrc = "#[mono(T = i32)]\nfn id<T>(t: T) -> T { t }\n"
	goodOut = "pub const _: *const () = (&id::<i32>) as *const _ as _;\nfn id<T>(t: T) -> T { t }\n"
	badSrc  = "#[mono(T = i32)]\nfn pair<T, U>() {}\n"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) count(stage Stage, status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Stage == stage && ev.Status == status {
			n++
		}
	}
	return n
}

func TestListFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/lib.rs":          "",
		"src/a/b.rs":          "",
		"src/notes.txt":       "",
		"target/debug/gen.rs": "",
		".git/hooks/x.rs":     "",
	})
	explicit := filepath.Join(root, "src", "notes.txt")

	got, err := ListFiles([]string{root, explicit, filepath.Join(root, "src", "lib.rs")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "src", "a", "b.rs"),
		filepath.Join(root, "src", "lib.rs"),
		explicit,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := ListFiles([]string{filepath.Join(root, "missing")}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestExpandIsolatesFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"good.rs":  goodSrc,
		"bad.rs":   badSrc,
		"plain.rs": "fn main() {}\n",
	})
	files, err := ListFiles([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordingSink{}
	timer := observ.NewTimer()
	res, err := Expand(context.Background(), &Request{
		Files:    files,
		BaseDir:  root,
		Jobs:     2,
		Progress: sink,
		Timer:    timer,
	})
	if err != nil {
		t.Fatal(err)
	}

	byName := make(map[string]*FileResult)
	for i := range res.Files {
		byName[res.Files[i].Display] = &res.Files[i]
	}
	good, bad, plain := byName["good.rs"], byName["bad.rs"], byName["plain.rs"]
	if good == nil || bad == nil || plain == nil {
		t.Fatalf("unexpected display names: %v", byName)
	}
	if string(good.Result.Output) != goodOut {
		t.Fatalf("good output:\n%s", good.Result.Output)
	}
	if good.Bag.Len() != 0 {
		t.Fatalf("good file has diagnostics: %v", good.Bag.Items())
	}
	if !bad.Failed() || !bad.Bag.HasErrors() {
		t.Fatalf("bad file should fail, bag=%v", bad.Bag.Items())
	}
	if string(plain.Result.Output) != "fn main() {}\n" {
		t.Fatalf("plain output: %q", plain.Result.Output)
	}
	if !res.HasErrors() {
		t.Fatal("result should report errors")
	}

	decls, sites, failed, cached := res.Stats()
	if decls != 1 || sites != 2 || failed != 1 || cached != 0 {
		t.Fatalf("stats = %d decls %d sites %d failed %d cached", decls, sites, failed, cached)
	}
	if n := res.Bag(0).Len(); n != bad.Bag.Len() {
		t.Fatalf("merged bag has %d items, want %d", n, bad.Bag.Len())
	}
	if got := sink.count(StageLoad, StatusQueued); got != 3 {
		t.Fatalf("queued events = %d", got)
	}
	if got := sink.count(StageExpand, StatusError); got != 1 {
		t.Fatalf("error events = %d", got)
	}
	if !strings.Contains(timer.Summary(), "expand") {
		t.Fatalf("timer summary lacks expand phase:\n%s", timer.Summary())
	}
}

func TestExpandMissingFile(t *testing.T) {
	root := t.TempDir()
	res, err := Expand(context.Background(), &Request{
		Files:   []string{filepath.Join(root, "gone.rs")},
		BaseDir: root,
	})
	if err != nil {
		t.Fatal(err)
	}
	fr := &res.Files[0]
	if !fr.Failed() {
		t.Fatal("missing file should fail")
	}
	items := fr.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("diagnostics = %v", items)
	}
	if items[0].Primary.File != fr.FileID {
		t.Fatalf("diagnostic points at file %d, want %d", items[0].Primary.File, fr.FileID)
	}
}

func TestExpandCacheReplay(t *testing.T) {
	root := writeTree(t, map[string]string{
		"good.rs": goodSrc,
		"bad.rs":  badSrc,
	})
	cache, err := OpenDiskCache(filepath.Join(root, ".cache"))
	if err != nil {
		t.Fatal(err)
	}
	files := []string{filepath.Join(root, "bad.rs"), filepath.Join(root, "good.rs")}
	req := &Request{Files: files, BaseDir: root, Cache: cache}

	first, err := Expand(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Expand(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	for i := range second.Files {
		a, b := &first.Files[i], &second.Files[i]
		if a.Cached {
			t.Fatalf("%s: first run served from cache", a.Display)
		}
		if !b.Cached {
			t.Fatalf("%s: second run missed the cache", b.Display)
		}
		if !bytes.Equal(a.Result.Output, b.Result.Output) || a.Failed() != b.Failed() {
			t.Fatalf("%s: cached result differs", b.Display)
		}
		if a.Bag.Len() != b.Bag.Len() {
			t.Fatalf("%s: cached diagnostics %d, want %d", b.Display, b.Bag.Len(), a.Bag.Len())
		}
		for j, d := range b.Bag.Items() {
			want := a.Bag.Items()[j]
			if d.Code != want.Code || d.Message != want.Message || d.Primary != want.Primary {
				t.Fatalf("%s: diagnostic %d = %+v, want %+v", b.Display, j, d, want)
			}
		}
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	third, err := Expand(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Fatal("cache should be empty after DropAll")
	}
}

func TestWriteModes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/good.rs":  goodSrc,
		"src/bad.rs":   badSrc,
		"src/plain.rs": "fn main() {}\n",
	})
	files, err := ListFiles([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Expand(context.Background(), &Request{Files: files, BaseDir: root})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("out dir", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out")
		sum, err := Write(context.Background(), res, WriteOptions{Mode: WriteOutDir, OutDir: out, BaseDir: root})
		if err != nil {
			t.Fatal(err)
		}
		if sum.Written != 1 || sum.Unchanged != 1 || sum.Skipped != 1 {
			t.Fatalf("summary = %+v", sum)
		}
		data, err := os.ReadFile(filepath.Join(out, "src", "good.rs"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != goodOut {
			t.Fatalf("written:\n%s", data)
		}
		if _, err := os.Stat(filepath.Join(out, "src", "bad.rs")); !os.IsNotExist(err) {
			t.Fatalf("failed file must not be written, stat err = %v", err)
		}
	})

	t.Run("stdout", func(t *testing.T) {
		var buf bytes.Buffer
		sink := &recordingSink{}
		if _, err := Write(context.Background(), res, WriteOptions{Mode: WriteStdout, Stdout: &buf, Progress: sink}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "// ===== src/good.rs =====\n"+goodOut) {
			t.Fatalf("stdout:\n%s", buf.String())
		}
		if strings.Contains(buf.String(), "bad.rs") {
			t.Fatal("failed file must not be printed")
		}
		if got := sink.count(StageWrite, StatusDone); got != 2 {
			t.Fatalf("write done events = %d", got)
		}
	})

	t.Run("dry run in place", func(t *testing.T) {
		sum, err := Write(context.Background(), res, WriteOptions{Mode: WriteInPlace, DryRun: true})
		if err != nil {
			t.Fatal(err)
		}
		if sum.Written != 1 || sum.Unchanged != 1 {
			t.Fatalf("summary = %+v", sum)
		}
		data, _ := os.ReadFile(filepath.Join(root, "src", "good.rs"))
		if string(data) != goodSrc {
			t.Fatal("dry run modified the source")
		}
	})

	t.Run("in place", func(t *testing.T) {
		if _, err := Write(context.Background(), res, WriteOptions{Mode: WriteInPlace}); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(filepath.Join(root, "src", "good.rs"))
		if string(data) != goodOut {
			t.Fatalf("in place:\n%s", data)
		}
		data, _ = os.ReadFile(filepath.Join(root, "src", "bad.rs"))
		if string(data) != badSrc {
			t.Fatal("failed file was rewritten")
		}
	})
}

func TestWriteKeepsSourceBytes(t *testing.T) {
	const (
		crlfSrc = "\xEF\xBB\xBF#[mono(T = i32)]\r\nfn f<T>(t: T) {\r\n    let s = \"a\r\nb\";\r\n}\r\n"
		crlfOut = "\xEF\xBB\xBFpub const _: *const () = (&f::<i32>) as *const _ as _;\r\nfn f<T>(t: T) {\r\n    let s = \"a\r\nb\";\r\n}\r\n"
	)
	root := writeTree(t, map[string]string{
		"src/mod.rs":  "",
		"src/crlf.rs": crlfSrc,
	})
	files, err := ListFiles([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Expand(context.Background(), &Request{Files: files, BaseDir: root})
	if err != nil {
		t.Fatal(err)
	}
	for _, fr := range res.Files {
		if fr.Failed() {
			t.Fatalf("%s failed: %v", fr.Display, fr.Bag.Items())
		}
	}
	if decls, sites, failed, _ := res.Stats(); decls != 1 || sites != 1 || failed != 0 {
		t.Fatalf("stats = %d/%d/%d", decls, sites, failed)
	}

	t.Run("out dir", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out")
		sum, err := Write(context.Background(), res, WriteOptions{Mode: WriteOutDir, OutDir: out, BaseDir: root})
		if err != nil {
			t.Fatal(err)
		}
		if sum.Written != 1 || sum.Unchanged != 1 || sum.Skipped != 0 {
			t.Fatalf("summary = %+v", sum)
		}
		data, err := os.ReadFile(filepath.Join(out, "src", "mod.rs"))
		if err != nil {
			t.Fatalf("empty file not mirrored: %v", err)
		}
		if len(data) != 0 {
			t.Fatalf("mod.rs = %q", data)
		}
		data, err = os.ReadFile(filepath.Join(out, "src", "crlf.rs"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != crlfOut {
			t.Fatalf("crlf.rs = %q", data)
		}
	})

	t.Run("in place", func(t *testing.T) {
		if _, err := Write(context.Background(), res, WriteOptions{Mode: WriteInPlace}); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(filepath.Join(root, "src", "crlf.rs"))
		if string(data) != crlfOut {
			t.Fatalf("crlf.rs = %q", data)
		}
	})
}

func TestMirrorPathOutsideBase(t *testing.T) {
	base := t.TempDir()
	if _, err := mirrorPath(filepath.Join(filepath.Dir(base), "x.rs"), base, "out"); err == nil {
		t.Fatal("expected error for file outside base")
	}
}

func TestTokenize(t *testing.T) {
	root := writeTree(t, map[string]string{"lib.rs": "fn f() {}\n"})
	res, err := Tokenize(filepath.Join(root, "lib.rs"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) < 6 {
		t.Fatalf("tokens = %d", len(res.Tokens))
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestTimingDiagnostic(t *testing.T) {
	timer := observ.NewTimer()
	timer.Track("expand")("")
	d, err := TimingDiagnostic("expand", timer.Report())
	if err != nil {
		t.Fatal(err)
	}
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo {
		t.Fatalf("diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, `"kind":"expand"`) {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

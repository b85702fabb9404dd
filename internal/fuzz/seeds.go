package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса

var builtinSeeds = []string{
	"",
	"fn main() {}\n",
	"#[mono(T = i32, U = i64)]\nfn foo<T, U>(t: T, u: U) {}\n",
	"#[mono(T = i32)]\n#[mono(T = u8)]\nfn id<T>(t: T) -> T { t }\n",
	"#[mono()]\nfn plain() {}\n",
	"#[mono_macro::mono(T = u8)]\npub fn f<T>() {}\n",
	"/// Docs.\n#[inline]\n#[mono(T = u8)]\npub(crate) async unsafe fn f<T: Clone>() where T: Copy {}\n",
	"#[mono('a = 'static, T = &'a str)]\nfn f<'a, T>(x: &'a T) {}\n",
	"#[mono(N = LEN, T = u8)]\nfn f<T, const N: usize>() {}\n",
	"#[mono(T = i32, T = u8, X = bool)]\nfn f<T>() {}\n",
	"#[mono(T = Vec<Option<(u8, [i32; 4])>>)]\nfn f<T>() {}\n",
	"#[mono(T = i32)]\nfn pair<T, U>() {}\n",
	"#[mono(T = )]\nfn f<T>() {}\n",
	"#[mono(T = i32\nfn f<T>() {}\n",
	"#[mono = \"x\"]\nfn f<T>() {}\n",
	"impl S {\n    #[mono(T = u8)]\n    fn m<T>() {}\n}\n",
	"mono!(<Foo as Tr<i32>>::foo);\n",
	"mono!(crate::m::f::<u8, 'static>);\n",
	"fn f() { let x = mono!(g); }\n",
	"mono!(<Foo as Tr<i32>::foo);\n",
	"macro_rules! m { () => { #[mono(T = u8)] fn f<T>() {} } }\n",
	"#![mono(T = u8)]\nfn f<T>() {}\n",
	"r#\"#[mono(T = u8)]\"#; /* #[mono] */ // #[mono]\n",
	"#[mono(T = i32)]\r\nfn crlf<T>() {}\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds *.rs files from testdata/ when the directory exists.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return bytes.Clone(src)
	}
	return bytes.Clone(src[:maxSeedBytes])
}

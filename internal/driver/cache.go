package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"monoforce/internal/diag"
	"monoforce/internal/expand"
	"monoforce/internal/source"
	"monoforce/internal/version"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...).
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// OptionsDigest identifies everything besides file content that changes an
// expansion: the expander build and the expand options.
func OptionsDigest(opts expand.Options) (Digest, error) {
	key := struct {
		Build      string
		Attributes []string
		PathMacros []string
		Duplicates string
		Unused     string
	}{
		Build:      version.Fingerprint(),
		Attributes: opts.Attributes,
		PathMacros: opts.PathMacros,
		Duplicates: opts.Mono.Duplicates.String(),
		Unused:     opts.Mono.Unused.String(),
	}
	data, err := msgpack.Marshal(&key)
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(data), nil
}

// DiskCache хранит результаты расширения по хешу содержимого и опций.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is one cached file expansion.
type CachePayload struct {
	Schema      uint16
	Output      []byte
	Failed      bool // Output nil из-за ошибок
	Decls       int
	Sites       int
	Diagnostics []cachedDiagnostic
}

type cachedSpan struct {
	Start, End uint32
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedEdit struct {
	Span    cachedSpan
	NewText string
}

type cachedFix struct {
	Title string
	Edits []cachedEdit
}

// cachedDiagnostic drops the FileID: spans are rebound to the file being
// expanded when the entry is replayed.
type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  cachedSpan
	Notes    []cachedNote
	Fixes    []cachedFix
}

// OpenDiskCache opens (creating if needed) a cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "monoforce")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "expand", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = cacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads a payload. Entries from another schema count as misses.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "expand"))
}

func toCachedSpan(sp source.Span) cachedSpan { return cachedSpan{Start: sp.Start, End: sp.End} }

func (s cachedSpan) bind(id source.FileID) source.Span {
	return source.Span{File: id, Start: s.Start, End: s.End}
}

func newPayload(res expand.Result, diags []diag.Diagnostic) *CachePayload {
	p := &CachePayload{
		Output:      res.Output,
		Failed:      res.Output == nil,
		Decls:       res.Decls,
		Sites:       res.Sites,
		Diagnostics: make([]cachedDiagnostic, len(diags)),
	}
	for i, d := range diags {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  toCachedSpan(d.Primary),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Span: toCachedSpan(n.Span), Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := cachedFix{Title: f.Title}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Span: toCachedSpan(e.Span), NewText: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		p.Diagnostics[i] = cd
	}
	return p
}

// replay restores a cached result for file id.
func (p *CachePayload) replay(id source.FileID, bag *diag.Bag) expand.Result {
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), cd.Primary.bind(id), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(n.Span.bind(id), n.Msg)
		}
		for _, f := range cd.Fixes {
			edits := make([]diag.FixEdit, len(f.Edits))
			for i, e := range f.Edits {
				edits[i] = diag.FixEdit{Span: e.Span.bind(id), NewText: e.NewText}
			}
			d = d.WithFix(f.Title, edits...)
		}
		bag.Add(d)
	}
	res := expand.Result{Decls: p.Decls, Sites: p.Sites}
	if !p.Failed {
		res.Output = p.Output
		if res.Output == nil {
			res.Output = []byte{}
		}
	}
	return res
}

// Package driver runs the expander over many files: discovery, parallel
// expansion with per-file diagnostics, the optional disk cache and writing
// the results.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"monoforce/internal/diag"
	"monoforce/internal/expand"
	"monoforce/internal/observ"
	"monoforce/internal/source"
	"monoforce/internal/trace"
)

// Request describes one multi-file expansion.
type Request struct {
	Files          []string // уже раскрытые ListFiles
	BaseDir        string   // для относительных путей в диагностиках и выводе
	Options        expand.Options
	Jobs           int // 0 = GOMAXPROCS
	MaxDiagnostics int // на файл, 0 = без ограничения
	Cache          *DiskCache
	Progress       ProgressSink
	Timer          *observ.Timer
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path    string // как передан в Request.Files
	Display string // относительно BaseDir
	FileID  source.FileID
	Result  expand.Result
	Bag     *diag.Bag
	Cached  bool
}

// Failed reports whether the file produced no output.
func (r *FileResult) Failed() bool { return r.Result.Output == nil }

// Result collects every file of a Request, in Request.Files order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Bag merges the per-file diagnostics in file order.
func (r *Result) Bag(maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for i := range r.Files {
		for _, d := range r.Files[i].Bag.Items() {
			out.Add(d)
		}
	}
	return out
}

// HasErrors reports whether any file failed, including errors dropped by a
// full bag.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Stats sums declarations and sites over all files.
func (r *Result) Stats() (decls, sites, failed, cached int) {
	for i := range r.Files {
		f := &r.Files[i]
		decls += f.Result.Decls
		sites += f.Result.Sites
		if f.Failed() {
			failed++
		}
		if f.Cached {
			cached++
		}
	}
	return decls, sites, failed, cached
}

// Expand loads and expands req.Files in parallel. Each file has its own
// diagnostics bag; an error in one file never affects another. The returned
// error is only set for cancellation.
func Expand(ctx context.Context, req *Request) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "expand")
	defer span.End("")

	fileSet := source.NewFileSetWithBase(req.BaseDir)
	res := &Result{FileSet: fileSet, Files: make([]FileResult, len(req.Files))}
	if len(req.Files) == 0 {
		return res, nil
	}

	var optsKey Digest
	cache := req.Cache
	if cache != nil {
		key, err := OptionsDigest(req.Options)
		if err != nil {
			// без ключа кэш только навредит
			cache = nil
		}
		optsKey = key
	}

	// Загрузка последовательная: FileSet не потокобезопасен.
	var loadDone func(string)
	if req.Timer != nil {
		loadDone = req.Timer.Track("load")
	}
	loadErrs := make([]error, len(req.Files))
	for i, path := range req.Files {
		display := displayPath(path, fileSet.BaseDir())
		res.Files[i] = FileResult{Path: path, Display: display, Bag: diag.NewBag(req.MaxDiagnostics)}
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было на что указать
			id = fileSet.AddVirtual(path, nil)
			loadErrs[i] = err
		}
		res.Files[i].FileID = id
	}
	if loadDone != nil {
		loadDone(strconv.Itoa(len(req.Files)) + " files")
	}

	displays := make([]string, len(res.Files))
	for i := range res.Files {
		displays[i] = res.Files[i].Display
	}
	emitQueued(req.Progress, displays)

	var expandDone func(string)
	if req.Timer != nil {
		expandDone = req.Timer.Track("expand")
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))

	for i := range res.Files {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr := &res.Files[i]
			if loadErrs[i] != nil {
				fr.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fr.FileID}, fmt.Sprintf("failed to load %s: %v", fr.Display, loadErrs[i])))
				emit(req.Progress, Event{File: fr.Display, Stage: StageLoad, Status: StatusError, Err: loadErrs[i]})
				return nil
			}
			expandOne(gctx, req, cache, optsKey, fileSet.Get(fr.FileID), fr)
			return nil
		})
	}
	err := g.Wait()
	if expandDone != nil {
		decls, sites, failed, cached := res.Stats()
		expandDone(fmt.Sprintf("%d decls, %d sites, %d failed, %d cached", decls, sites, failed, cached))
	}
	return res, err
}

func expandOne(ctx context.Context, req *Request, cache *DiskCache, optsKey Digest, file *source.File, fr *FileResult) {
	_, span := trace.Start(ctx, trace.ScopeFile, "file:"+fr.Display)
	started := time.Now()
	emit(req.Progress, Event{File: fr.Display, Stage: StageExpand, Status: StatusWorking})

	key := combineDigest(file.Hash, optsKey)
	if cache != nil {
		var payload CachePayload
		if ok, err := cache.Get(key, &payload); err == nil && ok {
			fr.Result = payload.replay(fr.FileID, fr.Bag)
			fr.Cached = true
			finishFile(req, fr, span, started)
			return
		}
	}

	// собственный bag без ограничения: кэшу нужен полный набор
	full := diag.NewBag(0)
	fr.Result = expand.File(file, req.Options, diag.BagReporter{Bag: full})
	for _, d := range full.Items() {
		fr.Bag.Add(d)
	}
	if cache != nil {
		if err := cache.Put(key, newPayload(fr.Result, full.Items())); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache-put-failed", err.Error())
		}
	}
	finishFile(req, fr, span, started)
}

func finishFile(req *Request, fr *FileResult, span *trace.Span, started time.Time) {
	elapsed := time.Since(started)
	if req.Timer != nil {
		req.Timer.Add("file", elapsed)
	}
	status := StatusDone
	switch {
	case fr.Failed():
		status = StatusError
	case fr.Cached:
		status = StatusCached
	}
	span.WithExtra("decls", strconv.Itoa(fr.Result.Decls)).
		WithExtra("sites", strconv.Itoa(fr.Result.Sites)).
		End(string(status))
	emit(req.Progress, Event{File: fr.Display, Stage: StageExpand, Status: status, Elapsed: elapsed})
}

package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"monoforce/internal/source"
	"monoforce/internal/trace"
)

// WriteMode selects where expanded files go.
type WriteMode uint8

const (
	// WriteOutDir mirrors every expanded file under OutDir.
	WriteOutDir WriteMode = iota
	// WriteInPlace overwrites changed sources.
	WriteInPlace
	// WriteStdout concatenates expanded files to Stdout.
	WriteStdout
)

type WriteOptions struct {
	Mode     WriteMode
	OutDir   string
	BaseDir  string    // корень, относительно которого зеркалируются пути
	Stdout   io.Writer // для WriteStdout
	DryRun   bool
	Progress ProgressSink
}

// WriteSummary counts what Write did.
type WriteSummary struct {
	Written   int
	Unchanged int
	Skipped   int // файлы с ошибками
}

var errOutsideBase = errors.New("file is outside the base directory")

// Write stores expanded files. Failed files are skipped; the others are
// written even when siblings failed. Files are processed in result order.
func Write(ctx context.Context, res *Result, opts WriteOptions) (WriteSummary, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "write")
	defer span.End("")

	var sum WriteSummary
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Failed() {
			sum.Skipped++
			continue
		}
		emit(opts.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusWorking})
		if err := writeOne(fr, res.FileSet.Get(fr.FileID), len(res.Files) > 1, opts, &sum); err != nil {
			emit(opts.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusError, Err: err})
			return sum, err
		}
		emit(opts.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusDone})
	}
	return sum, nil
}

func writeOne(fr *FileResult, original *source.File, many bool, opts WriteOptions, sum *WriteSummary) error {
	changed := !bytes.Equal(original.Content, fr.Result.Output)
	out := original.Restore(fr.Result.Output)

	switch opts.Mode {
	case WriteStdout:
		if opts.Stdout == nil {
			return errors.New("no stdout writer")
		}
		if many {
			fmt.Fprintf(opts.Stdout, "// ===== %s =====\n", fr.Display)
		}
		if _, err := opts.Stdout.Write(out); err != nil {
			return err
		}
		sum.Written++

	case WriteInPlace:
		if !changed {
			sum.Unchanged++
			return nil
		}
		if !opts.DryRun {
			if err := writeFilePreserveMode(fr.Path, out); err != nil {
				return err
			}
		}
		sum.Written++

	default:
		dst, err := mirrorPath(fr.Path, opts.BaseDir, opts.OutDir)
		if err != nil {
			return fmt.Errorf("%s: %w", fr.Display, err)
		}
		if !opts.DryRun {
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return err
			}
			if err := writeFilePreserveMode(dst, out); err != nil {
				return err
			}
		}
		if changed {
			sum.Written++
		} else {
			sum.Unchanged++
		}
	}
	return nil
}

// mirrorPath maps base/a/b.rs to out/a/b.rs.
func mirrorPath(path, base, out string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", errOutsideBase
	}
	return filepath.Join(out, rel), nil
}

// writeFilePreserveMode пишет через временный файл и сохраняет права.
func writeFilePreserveMode(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".monoforce-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Chmod(name, mode); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}

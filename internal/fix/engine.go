package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"monoforce/internal/diag"
	"monoforce/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without writing files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	id    string
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// FixID is the stable identifier shown next to a suggested fix.
func FixID(d *diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// and writes the edited files.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	if err := applyCandidates(fs, selected, opts, result); err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	order := 0
	for i := range diagnostics {
		d := &diagnostics[i]
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{id: FixID(d, idx), diag: *d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders candidates by file, primary span and insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

func applyCandidates(fs *source.FileSet, selected []candidate, opts ApplyOptions, result *ApplyResult) error {
	accepted := make(map[source.FileID][]diag.FixEdit)
	editCount := make(map[source.FileID]int)
	var order []source.FileID

	for _, cand := range selected {
		reason := ""
		for _, e := range cand.fix.Edits {
			file := fs.Get(e.Span.File)
			if file == nil {
				reason = "target file is unknown"
				break
			}
			if file.Flags&source.FileVirtual != 0 && !opts.DryRun {
				reason = "target file is virtual"
				break
			}
			if conflictsWithExisting(accepted[e.Span.File], e) {
				reason = fmt.Sprintf("conflicts with previously applied edits in %s", file.FormatPath("auto", fs.BaseDir()))
				break
			}
		}
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			if _, seen := accepted[e.Span.File]; !seen {
				order = append(order, e.Span.File)
			}
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
			editCount[e.Span.File]++
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:          cand.id,
			Title:       cand.fix.Title,
			Code:        cand.diag.Code,
			Message:     cand.diag.Message,
			PrimaryPath: formatFilePath(fs, cand.diag.Primary.File),
			EditCount:   len(cand.fix.Edits),
		})
	}

	for _, fileID := range order {
		file := fs.Get(fileID)
		buf, err := ApplyEdits(file.Content, accepted[fileID])
		if err != nil {
			return fmt.Errorf("fix %s: %w", file.Path, err)
		}
		if !opts.DryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, file.Restore(buf), mode); err != nil {
				return fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			EditCount: editCount[fileID],
			Content:   buf,
		})
	}
	sort.SliceStable(result.FileChanges, func(i, j int) bool {
		return result.FileChanges[i].Path < result.FileChanges[j].Path
	})
	return nil
}

func conflictsWithExisting(existing []diag.FixEdit, edit diag.FixEdit) bool {
	for _, prev := range existing {
		if spansConflict(prev, edit) {
			return true
		}
		// две вставки в одну точку: порядок не определён
		if prev.Span.Empty() && edit.Span.Empty() && prev.Span.Start == edit.Span.Start {
			return true
		}
	}
	return false
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}

package fix

import (
	"errors"
	"fmt"
	"sort"

	"monoforce/internal/diag"
)

// ErrOverlap is returned by ApplyEdits when two edits touch the same bytes.
var ErrOverlap = errors.New("overlapping edits")

// ApplyEdits applies edits (all against content) and returns the new bytes.
// Edits are applied in offset order; an insertion sharing its offset with
// a replacement goes first. content is not modified.
func ApplyEdits(content []byte, edits []diag.FixEdit) ([]byte, error) {
	if len(edits) == 0 {
		return append([]byte{}, content...), nil
	}
	sorted := append([]diag.FixEdit(nil), edits...)
	sortEdits(sorted)

	size := len(content)
	for i, e := range sorted {
		if int(e.Span.End) > len(content) || e.Span.Start > e.Span.End {
			return nil, fmt.Errorf("edit %s out of range (len %d)", e.Span, len(content))
		}
		if i > 0 && spansConflict(sorted[i-1], e) {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlap, sorted[i-1].Span, e.Span)
		}
		size += len(e.NewText) - int(e.Span.Len())
	}

	out := make([]byte, 0, size)
	cur := uint32(0)
	for _, e := range sorted {
		out = append(out, content[cur:e.Span.Start]...)
		out = append(out, e.NewText...)
		cur = e.Span.End
	}
	out = append(out, content[cur:]...)
	return out, nil
}

// sortEdits: по началу, вставки раньше замен с тем же началом, иначе порядок сохраняется.
func sortEdits(edits []diag.FixEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i].Span, edits[j].Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Empty() && !b.Empty()
	})
}

// spansConflict reports whether two edits overlap. Spans are half-open
// [Start, End). Two insertions never conflict. An insertion conflicts with a
// replacement when it falls strictly inside it.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

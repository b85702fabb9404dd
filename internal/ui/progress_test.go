package ui

import (
	"math"
	"strings"
	"testing"

	"monoforce/internal/driver"
)

func newModel(withWrite bool, files ...string) *progressModel {
	return NewProgressModel("expand", files, nil, withWrite).(*progressModel)
}

func TestApplyEventStatus(t *testing.T) {
	m := newModel(false, "a.rs", "b.rs")

	m.applyEvent(driver.Event{File: "a.rs", Stage: driver.StageExpand, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "expanding" {
		t.Fatalf("status = %q", got)
	}
	m.applyEvent(driver.Event{File: "a.rs", Stage: driver.StageExpand, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.rs", Stage: driver.StageExpand, Status: driver.StatusCached})
	m.applyEvent(driver.Event{File: "unknown.rs", Stage: driver.StageExpand, Status: driver.StatusError})

	if m.items[0].status != "done" || m.items[1].status != "cached" {
		t.Fatalf("items = %+v", m.items)
	}
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v, want 1", got)
	}
}

func TestApplyEventWithWrite(t *testing.T) {
	m := newModel(true, "a.rs", "b.rs")

	m.applyEvent(driver.Event{File: "a.rs", Stage: driver.StageExpand, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.rs", Stage: driver.StageExpand, Status: driver.StatusError})
	if got := m.percent(); math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("percent after expand = %v, want 0.9", got)
	}

	m.applyEvent(driver.Event{File: "a.rs", Stage: driver.StageWrite, Status: driver.StatusWorking})
	if m.items[0].status != "writing" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.rs", Stage: driver.StageWrite, Status: driver.StatusDone})
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent after write = %v", got)
	}
}

func TestPipelineLabel(t *testing.T) {
	m := newModel(false, "a.rs")
	m.applyEvent(driver.Event{Stage: driver.StageWrite, Status: driver.StatusWorking})
	if m.stageLabel != "writing" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
	if !strings.Contains(m.View(), "expand (writing)") {
		t.Fatalf("view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"src/lib.rs", 20, "src/lib.rs"},
		{"src/very/long/path.rs", 10, "src/..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

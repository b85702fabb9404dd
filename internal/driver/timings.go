package driver

import (
	"encoding/json"
	"fmt"

	"monoforce/internal/diag"
	"monoforce/internal/observ"
	"monoforce/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// TimingDiagnostic packs a timer report into an ObsTimings diagnostic; JSON
// output carries the phases as a note.
func TimingDiagnostic(kind string, report observ.Report) (diag.Diagnostic, error) {
	payload := timingPayload{Kind: kind, TotalMS: report.TotalMS, Phases: report.Phases}
	data, err := json.Marshal(payload)
	if err != nil {
		return diag.Diagnostic{}, err
	}
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, fmt.Sprintf("timings (%s): total %.2f ms", kind, report.TotalMS))
	return d.WithNote(source.Span{}, string(data)), nil
}

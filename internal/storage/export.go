package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/san-kum/vtrim/internal/analysis"
)

type ExportData struct {
	Meta  RunMetadata           `json:"run"`
	Sweep []analysis.SweepPoint `json:"sweep,omitempty"`
}

// ExportJSON writes a run with its sweep as indented JSON.
func ExportJSON(w io.Writer, run *Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Meta: run.Meta, Sweep: run.Sweep})
}

// ExportCSV writes a sweep in the same layout as the stored sweep.csv.
func ExportCSV(w io.Writer, points []analysis.SweepPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sweepHeader); err != nil {
		return err
	}
	for _, p := range points {
		if err := cw.Write(sweepRow(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

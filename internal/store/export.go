package store

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON export shape for one run.
type ExportData struct {
	ID        string             `json:"id"`
	Source    string             `json:"source"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Columns   []string           `json:"columns"`
	Positions [][]float64        `json:"positions"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, columns []string, positions [][]float64) error {
	data := ExportData{
		ID:        meta.ID,
		Source:    meta.Source,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Steps:     meta.Steps,
		Columns:   columns,
		Positions: positions,
		Metrics:   meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout is ExportJSON to standard output.
func ExportJSONStdout(meta *RunMetadata, columns []string, positions [][]float64) error {
	return ExportJSON(os.Stdout, meta, columns, positions)
}

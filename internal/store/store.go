// Package store persists simulation runs: one directory per run holding
// metadata.json and the trajectory record stream.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/orbitlab/internal/body"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Source    string             `json:"source"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Bodies    int                `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Run is an in-progress stored run. The trajectory streams to disk while
// the simulation executes; Finish seals the metadata.
type Run struct {
	meta   RunMetadata
	dir    string
	file   *os.File
	writer *TrajectoryWriter
}

// Begin creates the run directory and opens the trajectory stream,
// writing its header for the given ensemble.
func (s *Store) Begin(source string, dt, duration float64, bodies []*body.Body) (*Run, error) {
	runID := fmt.Sprintf("orbit_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, err
	}

	f, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return nil, err
	}

	w := NewTrajectoryWriter(f)
	if err := w.WriteHeader(bodies); err != nil {
		f.Close()
		return nil, err
	}

	return &Run{
		meta: RunMetadata{
			ID:        runID,
			Timestamp: time.Now(),
			Source:    source,
			Dt:        dt,
			Duration:  duration,
			Bodies:    len(bodies),
		},
		dir:    runDir,
		file:   f,
		writer: w,
	}, nil
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.meta.ID }

// Writer returns the streaming trajectory observer.
func (r *Run) Writer() *TrajectoryWriter { return r.writer }

// Finish flushes the trajectory, closes the stream and writes the run
// metadata.
func (r *Run) Finish(steps int, metrics map[string]float64) error {
	flushErr := r.writer.Flush()
	closeErr := r.file.Close()
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return closeErr
	}

	r.meta.Steps = steps
	r.meta.Metrics = metrics

	f, err := os.Create(filepath.Join(r.dir, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r.meta)
}

// List returns metadata for every stored run. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), metadataFile))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load returns the metadata for one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads a stored trajectory back: the header column names
// and one row of floats per step. The trailing field separator on every
// record produces an empty final CSV field, which is dropped.
func (s *Store) LoadTrajectory(runID string) ([]string, [][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("store: run %s has an empty trajectory", runID)
	}

	names := trimTrailingEmpty(records[0])
	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		fields := trimTrailingEmpty(record)
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("store: bad trajectory value %q: %w", field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return names, rows, nil
}

func trimTrailingEmpty(fields []string) []string {
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

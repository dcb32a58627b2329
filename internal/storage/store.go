package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/vtrim/internal/analysis"
	"github.com/san-kum/vtrim/internal/config"
	"github.com/san-kum/vtrim/internal/trim"
)

const (
	metadataFile = "metadata.json"
	sweepFile    = "sweep.csv"
)

var sweepHeader = []string{
	"incidence_deg", "tail_angle_deg", "residual_moment", "converged",
	"iterations", "cma_per_deg", "stable",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string                `json:"id"`
	Kind      string                `json:"kind"`
	Preset    string                `json:"preset"`
	DataFile  string                `json:"data_file"`
	Samples   int                   `json:"samples"`
	Timestamp time.Time             `json:"timestamp"`
	Aircraft  config.AircraftConfig `json:"aircraft"`
	Solver    config.SolverConfig   `json:"solver"`
	Trim      *trim.Result          `json:"trim,omitempty"`
	Stability *trim.Stability       `json:"stability,omitempty"`
	Neutral   *float64              `json:"neutral_incidence_deg,omitempty"`
	Points    int                   `json:"points,omitempty"`
}

// Run is a saved solve or sweep. Sweep is empty for a single solve.
type Run struct {
	Meta  RunMetadata
	Sweep []analysis.SweepPoint
}

func (s *Store) Save(run *Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s", run.Meta.Kind, now.Format("20060102-150405.000000"))
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	run.Meta.ID = runID
	run.Meta.Timestamp = now
	run.Meta.Points = len(run.Sweep)

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run.Meta); err != nil {
		return "", err
	}

	if len(run.Sweep) == 0 {
		return runID, nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, sweepFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sweepHeader); err != nil {
		return "", err
	}
	for _, p := range run.Sweep {
		if err := w.Write(sweepRow(p)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func sweepRow(p analysis.SweepPoint) []string {
	return []string{
		formatFloat(p.IncidenceDeg),
		formatFloat(p.Trim.TailAngleDeg),
		strconv.FormatFloat(p.Trim.ResidualMoment, 'e', 6, 64),
		strconv.FormatBool(p.Trim.Converged),
		strconv.Itoa(p.Trim.Iterations),
		formatFloat(p.Stability.DerivativePerDeg),
		strconv.FormatBool(p.Stability.Stable),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns all readable runs, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

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

// LoadSweep reads back the sweep table of a run. Runs without a sweep
// return an empty slice.
func (s *Store) LoadSweep(runID string) ([]analysis.SweepPoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, sweepFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []analysis.SweepPoint{}, nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sweepHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []analysis.SweepPoint{}, nil
	}

	points := make([]analysis.SweepPoint, 0, len(records)-1)
	for i, rec := range records[1:] {
		p, err := parseSweepRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", sweepFile, i+2, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func parseSweepRow(rec []string) (analysis.SweepPoint, error) {
	var p analysis.SweepPoint
	var err error

	floatsAt := []struct {
		dst *float64
		idx int
	}{
		{&p.IncidenceDeg, 0},
		{&p.Trim.TailAngleDeg, 1},
		{&p.Trim.ResidualMoment, 2},
		{&p.Stability.DerivativePerDeg, 5},
	}
	for _, f := range floatsAt {
		if *f.dst, err = strconv.ParseFloat(rec[f.idx], 64); err != nil {
			return p, err
		}
	}
	if p.Trim.Converged, err = strconv.ParseBool(rec[3]); err != nil {
		return p, err
	}
	if p.Trim.Iterations, err = strconv.Atoi(rec[4]); err != nil {
		return p, err
	}
	if p.Stability.Stable, err = strconv.ParseBool(rec[6]); err != nil {
		return p, err
	}
	return p, nil
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"sirlab/internal/epi"
	"sirlab/internal/metrics"
)

// Store persists simulation runs under a base directory, one subdirectory
// per run holding metadata.json and trajectory.csv.
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
	ID        string          `json:"id"`
	Model     string          `json:"model"`
	Timestamp time.Time       `json:"timestamp"`
	Params    epi.Params      `json:"params"`
	Metrics   *metrics.Record `json:"metrics"`
}

func (s *Store) Save(model string, p epi.Params, tr *epi.Trajectory, rec *metrics.Record) (string, error) {
	runID := fmt.Sprintf("%s_%s", model, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Timestamp: time.Now(),
		Params:    p,
		Metrics:   rec,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, tr); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []*RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) LoadTrajectory(runID string) (*epi.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}

// WriteCSV formats a trajectory as day,susceptible,infected,removed rows.
func WriteCSV(w io.Writer, tr *epi.Trajectory) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"day", "susceptible", "infected", "removed"}); err != nil {
		return err
	}

	for i := 0; i < tr.Len(); i++ {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Susceptible[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Infected[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Removed[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func ReadCSV(r io.Reader) (*epi.Trajectory, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("trajectory file has no samples")
	}

	tr := &epi.Trajectory{}
	for _, row := range rows[1:] {
		if len(row) != 4 {
			return nil, fmt.Errorf("malformed trajectory row: %v", row)
		}
		vals := make([]float64, 4)
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		tr.Times = append(tr.Times, vals[0])
		tr.Susceptible = append(tr.Susceptible, vals[1])
		tr.Infected = append(tr.Infected, vals[2])
		tr.Removed = append(tr.Removed, vals[3])
	}

	return tr, nil
}

// ExportJSON writes one run as a self-contained JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, tr *epi.Trajectory) error {
	doc := struct {
		*RunMetadata
		Trajectory *epi.Trajectory `json:"trajectory"`
	}{meta, tr}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

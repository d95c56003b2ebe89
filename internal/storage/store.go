// Package storage persists completed solve results under a base directory,
// one subdirectory per run holding metadata.json and history.csv.
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

	"github.com/san-kum/ikswarm/internal/config"
	"github.com/san-kum/ikswarm/internal/solver"
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

type RunMetadata struct {
	ID           string             `json:"id"`
	Chain        string             `json:"chain"`
	Timestamp    time.Time          `json:"timestamp"`
	Target       [3]float64         `json:"target"`
	Particles    int                `json:"particles"`
	Iterations   int                `json:"iterations"`
	Inertia      float64            `json:"inertia"`
	Cognitive    float64            `json:"cognitive"`
	Social       float64            `json:"social"`
	Seed         int64              `json:"seed"`
	BestCost     float64            `json:"best_cost"`
	BestPosition []float64          `json:"best_position"`
	EndEffector  [3]float64         `json:"end_effector"`
	Evaluations  int                `json:"evaluations"`
	ElapsedSec   float64            `json:"elapsed_sec"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes one completed solution as a new run directory and returns its id.
func (s *Store) Save(sol *solver.Solution, cfg *config.Config) (string, error) {
	runID := fmt.Sprintf("%s_%d", sol.Chain, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Chain:        sol.Chain,
		Timestamp:    time.Now(),
		Target:       sol.Target,
		Particles:    cfg.Swarm.Particles,
		Iterations:   sol.Iterations,
		Inertia:      cfg.Swarm.Inertia,
		Cognitive:    cfg.Swarm.Cognitive,
		Social:       cfg.Swarm.Social,
		Seed:         cfg.Swarm.Seed,
		BestCost:     sol.BestCost,
		BestPosition: sol.BestPosition,
		EndEffector:  sol.EndEffector,
		Evaluations:  sol.Evaluations,
		ElapsedSec:   sol.Elapsed.Seconds(),
		Metrics:      sol.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "best_cost"}); err != nil {
		return "", err
	}
	for i, c := range sol.History {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(c, 'e', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
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

// LoadHistory reads the per-iteration best cost trace of a run.
func (s *Store) LoadHistory(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	history := make([]float64, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 2 {
			continue
		}
		c, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		history = append(history, c)
	}
	return history, nil
}

type exportData struct {
	RunMetadata
	History []float64 `json:"history"`
}

// ExportJSON re-emits a stored run, metadata and history together, as
// indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	history, err := s.LoadHistory(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData{RunMetadata: *meta, History: history})
}

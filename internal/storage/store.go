package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/bubblepop/internal/sim"
)

var ErrRunNotFound = errors.New("run not found")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"frame", "score", "bubbles", "tries", "shots", "popped"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunInfo describes how a run was produced.
type RunInfo struct {
	Preset       string
	Mode         string
	Policy       string
	PolicyParams map[string]float64
	Seed         int64
	MaxFrames    int
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Preset       string             `json:"preset,omitempty"`
	Mode         string             `json:"mode"`
	Policy       string             `json:"policy"`
	PolicyParams map[string]float64 `json:"policy_params,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	MaxFrames    int                `json:"max_frames"`
	Frames       int                `json:"frames"`
	Score        int                `json:"score"`
	Over         bool               `json:"over"`
	Cleared      bool               `json:"cleared"`
	Remaining    int                `json:"remaining"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Preset:       info.Preset,
		Mode:         info.Mode,
		Policy:       info.Policy,
		PolicyParams: info.PolicyParams,
		Timestamp:    time.Now(),
		Seed:         info.Seed,
		MaxFrames:    info.MaxFrames,
		Frames:       result.Frames,
		Score:        result.Score(),
		Over:         result.Over,
		Cleared:      result.Cleared,
		Remaining:    result.Final.Count(),
		Metrics:      result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Samples); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Frame),
			strconv.Itoa(smp.Score),
			strconv.Itoa(smp.Bubbles),
			strconv.Itoa(smp.Tries),
			strconv.Itoa(smp.Shots),
			strconv.Itoa(smp.Popped),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Directories without valid
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(framesHeader) {
			continue
		}
		var vals [6]int
		ok := true
		for j := range vals {
			v, err := strconv.Atoi(record[j])
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, sim.Sample{
			Frame:   vals[0],
			Score:   vals[1],
			Bubbles: vals[2],
			Tries:   vals[3],
			Shots:   vals[4],
			Popped:  vals[5],
		})
	}
	return samples, nil
}

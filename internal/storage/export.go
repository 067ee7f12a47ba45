package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/bubblepop/internal/sim"
)

type ExportData struct {
	Mode      string             `json:"mode"`
	Policy    string             `json:"policy"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Score     int                `json:"score"`
	Over      bool               `json:"over"`
	Cleared   bool               `json:"cleared"`
	Remaining int                `json:"remaining"`
	Samples   []sim.Sample       `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

func NewExportData(info RunInfo, result *sim.Result) ExportData {
	samples := result.Samples
	if samples == nil {
		samples = []sim.Sample{}
	}
	return ExportData{
		Mode:      info.Mode,
		Policy:    info.Policy,
		Seed:      result.Seed,
		Frames:    result.Frames,
		Score:     result.Score(),
		Over:      result.Over,
		Cleared:   result.Cleared,
		Remaining: result.Final.Count(),
		Samples:   samples,
		Metrics:   result.Metrics,
	}
}

// Export rebuilds the export of a saved run from its metadata and frames.
func (s *Store) Export(runID string) (ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return ExportData{}, err
	}
	samples, err := s.LoadFrames(runID)
	if err != nil {
		return ExportData{}, err
	}
	if samples == nil {
		samples = []sim.Sample{}
	}
	return ExportData{
		Mode:      meta.Mode,
		Policy:    meta.Policy,
		Seed:      meta.Seed,
		Frames:    meta.Frames,
		Score:     meta.Score,
		Over:      meta.Over,
		Cleared:   meta.Cleared,
		Remaining: meta.Remaining,
		Samples:   samples,
		Metrics:   meta.Metrics,
	}, nil
}

func EncodeJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func WriteJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	return EncodeJSON(w, NewExportData(info, result))
}

func WriteExportFile(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return EncodeJSON(file, data)
}

func ExportJSON(path string, info RunInfo, result *sim.Result) error {
	return WriteExportFile(path, NewExportData(info, result))
}

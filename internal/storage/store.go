// Package storage keeps a history of rendered outputs. Each run gets
// its own directory under the base dir with a metadata.json and a
// params.csv snapshot of the visual parameters that drove the render.
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
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultDir is the per-user run history location.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".glyphgen", "runs")
	}
	return filepath.Join(home, ".glyphgen", "runs")
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // still, video, variants
	Emotion   string    `json:"emotion"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Duration  float64   `json:"duration,omitempty"`
	FPS       int       `json:"fps,omitempty"`
	Frames    int       `json:"frames,omitempty"`
	Output    string    `json:"output"`

	Params map[string]float64 `json:"params,omitempty"`
}

// Save records one run. The ID is derived from the emotion label and
// the wall clock so repeated runs never collide.
func (s *Store) Save(meta RunMetadata) (string, error) {
	label := meta.Emotion
	if label == "" {
		label = "text"
	}
	runID := fmt.Sprintf("%s_%d", label, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if len(meta.Params) == 0 {
		return runID, nil
	}

	csvPath := filepath.Join(runDir, "params.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"param", "value"}); err != nil {
		return "", err
	}

	keys := make([]string, 0, len(meta.Params))
	for k := range meta.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		row := []string{k, strconv.FormatFloat(meta.Params[k], 'f', 6, 64)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns all recorded runs, newest first. A missing base dir is
// an empty history, not an error.
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadParams reads back the visual parameter snapshot of a run.
func (s *Store) LoadParams(runID string) (map[string]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "params.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	params := make(map[string]float64)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		val, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		params[record[0]] = val
	}

	return params, nil
}

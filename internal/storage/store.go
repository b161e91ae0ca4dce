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

	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/sim"
)

const (
	metadataFile     = "metadata.json"
	trajectoriesFile = "trajectories.csv"

	// columns per body in trajectories.csv: x, y, vx, vy
	bodyColumns = 4
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

type BodyMetadata struct {
	ID   physics.ID `json:"id"`
	Name string     `json:"name"`
	Kind string     `json:"kind"`
	Mass float64    `json:"mass"`
	// CompletedStep is the step on which the body's trail froze, 0 if never.
	CompletedStep int `json:"completed_step,omitempty"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Timestep    float64            `json:"timestep"`
	Steps       int                `json:"steps"`
	Integrator  string             `json:"integrator"`
	Bodies      []BodyMetadata     `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift float64            `json:"energy_drift"`
}

// RunInfo describes a run about to be saved.
type RunInfo struct {
	Preset     string
	Timestep   float64
	Integrator string
}

// Save writes the metadata and the recorded frames of result under a new
// run directory and returns its id.
func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	runID, runDir, err := s.newRunDir(info.Preset)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Preset:      info.Preset,
		Timestamp:   time.Now(),
		Timestep:    info.Timestep,
		Steps:       result.StepsTaken,
		Integrator:  info.Integrator,
		Metrics:     result.Metrics,
		EnergyDrift: result.EnergyDrift,
	}
	if len(result.Frames) > 0 {
		for _, b := range result.Frames[0] {
			meta.Bodies = append(meta.Bodies, BodyMetadata{
				ID:            b.ID,
				Name:          b.Name,
				Kind:          b.Kind.String(),
				Mass:          b.Mass,
				CompletedStep: result.Completed[b.ID],
			})
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectories(filepath.Join(runDir, trajectoriesFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(prefix string) (string, string, error) {
	if prefix == "" {
		prefix = "run"
	}
	base := fmt.Sprintf("%s_%d", prefix, time.Now().Unix())
	runID := base
	for n := 2; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
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

func writeTrajectories(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if len(result.Frames) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"time"}
	for _, b := range result.Frames[0] {
		header = append(header, b.Name+"_x", b.Name+"_y", b.Name+"_vx", b.Name+"_vy")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, 1+len(frame)*bodyColumns)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 0, 64))
		for _, b := range frame {
			row = append(row,
				strconv.FormatFloat(b.Pos.X, 'e', 9, 64),
				strconv.FormatFloat(b.Pos.Y, 'e', 9, 64),
				strconv.FormatFloat(b.Vel.X, 'e', 9, 64),
				strconv.FormatFloat(b.Vel.Y, 'e', 9, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// Track is the recorded path of one body.
type Track struct {
	Name   string
	Times  []float64
	X, Y   []float64
	VX, VY []float64
}

// LoadTracks reads trajectories.csv back into one Track per body, in the
// order the bodies were added.
func (s *Store) LoadTracks(runID string) ([]Track, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoriesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return []Track{}, nil
	}

	header := records[0]
	n := (len(header) - 1) / bodyColumns
	tracks := make([]Track, n)
	for i := range tracks {
		name := header[1+i*bodyColumns]
		tracks[i].Name = name[:len(name)-len("_x")]
	}

	for line, record := range records[1:] {
		values := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
			}
			values[j] = v
		}
		for i := range tracks {
			c := 1 + i*bodyColumns
			tracks[i].Times = append(tracks[i].Times, values[0])
			tracks[i].X = append(tracks[i].X, values[c])
			tracks[i].Y = append(tracks[i].Y, values[c+1])
			tracks[i].VX = append(tracks[i].VX, values[c+2])
			tracks[i].VY = append(tracks[i].VY, values[c+3])
		}
	}
	return tracks, nil
}

// FindTrack returns the track for the named body, or nil.
func FindTrack(tracks []Track, name string) *Track {
	for i := range tracks {
		if tracks[i].Name == name {
			return &tracks[i]
		}
	}
	return nil
}

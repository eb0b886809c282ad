package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/futuroptimist/strider/internal/locomotion"
	"github.com/futuroptimist/strider/internal/walker"
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
	ID        string             `json:"id"`
	Terrain   string             `json:"terrain"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Contacts  int                `json:"contacts"`
	Metrics   map[string]float64 `json:"metrics"`
}

var frameHeader = []string{
	"time", "linear_speed", "angular_speed",
	"root_x", "root_y", "root_z", "ground_height",
	"left_offset", "left_target", "left_slope", "left_contact",
	"right_offset", "right_target", "right_slope", "right_contact",
	"pelvis_offset",
	"w_idle", "w_walk", "w_run", "w_turn_left", "w_turn_right",
}

// Save writes a run as a directory: metadata.json, frames.csv, contacts.csv.
func (s *Store) Save(terrainName string, dt, duration float64, seed int64, result *walker.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", terrainName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Terrain:   terrainName,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		Steps:     result.StepsTaken,
		Contacts:  len(result.Contacts),
		Metrics:   result.Metrics,
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

	if err := writeFramesCSV(filepath.Join(runDir, "frames.csv"), result.Frames); err != nil {
		return "", err
	}
	if err := writeContactsCSV(filepath.Join(runDir, "contacts.csv"), result.Contacts); err != nil {
		return "", err
	}

	return runID, nil
}

func writeFramesCSV(path string, frames []walker.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, f := range frames {
		if err := w.Write(frameRow(f)); err != nil {
			return err
		}
	}
	return nil
}

func frameRow(f walker.Frame) []string {
	return []string{
		ff(f.T), ff(f.LinearSpeed), ff(f.AngularSpeed),
		ff(f.Root.X), ff(f.Root.Y), ff(f.Root.Z), ff(f.GroundHeight),
		ff(f.Left.Offset), ff(f.Left.TargetOffset), ff(f.Left.SlopeAngle), fb(f.Left.InContact),
		ff(f.Right.Offset), ff(f.Right.TargetOffset), ff(f.Right.SlopeAngle), fb(f.Right.InContact),
		ff(f.PelvisOffset),
		ff(f.Snapshot.Weights.Idle), ff(f.Snapshot.Weights.Walk), ff(f.Snapshot.Weights.Run),
		ff(f.Snapshot.Weights.TurnLeft), ff(f.Snapshot.Weights.TurnRight),
	}
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func fb(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func writeContactsCSV(path string, contacts []walker.Contact) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "foot", "world_height", "offset", "slope"}); err != nil {
		return err
	}
	for _, c := range contacts {
		row := []string{ff(c.T), string(c.Foot), ff(c.WorldHeight), ff(c.Offset), ff(c.SlopeAngle)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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

// FramesPath returns the location of a run's frame table.
func (s *Store) FramesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "frames.csv")
}

// LoadContacts reads a saved run's contact events back.
func (s *Store) LoadContacts(runID string) ([]walker.Contact, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "contacts.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	contacts := make([]walker.Contact, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 5 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		worldHeight, _ := strconv.ParseFloat(record[2], 64)
		offset, _ := strconv.ParseFloat(record[3], 64)
		slope, _ := strconv.ParseFloat(record[4], 64)
		contacts = append(contacts, walker.Contact{
			T: t,
			ContactEvent: locomotion.ContactEvent{
				Foot:        locomotion.Foot(record[1]),
				WorldHeight: worldHeight,
				Offset:      offset,
				SlopeAngle:  slope,
			},
		})
	}
	return contacts, nil
}

// LoadFrames reads a saved run's frame table back as column-major series
// keyed by header name.
func (s *Store) LoadFrames(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return map[string][]float64{}, nil
	}

	header := records[0]
	series := make(map[string][]float64, len(header))
	for _, name := range header {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		for i, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			series[header[i]] = append(series[header[i]], v)
		}
	}
	return series, nil
}

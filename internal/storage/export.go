package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/futuroptimist/strider/internal/walker"
)

type ExportData struct {
	Terrain  string             `json:"terrain"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Frames   []walker.Frame     `json:"frames"`
	Contacts []walker.Contact   `json:"contacts"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a full run to path as indented JSON.
func ExportJSON(path, terrainName string, dt, duration float64, result *walker.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportJSON(file, terrainName, dt, duration, result)
}

// ExportJSONStdout writes a full run to stdout as indented JSON.
func ExportJSONStdout(terrainName string, dt, duration float64, result *walker.Result) error {
	return exportJSON(os.Stdout, terrainName, dt, duration, result)
}

func exportJSON(w io.Writer, terrainName string, dt, duration float64, result *walker.Result) error {
	data := ExportData{
		Terrain:  terrainName,
		Dt:       dt,
		Duration: duration,
		Steps:    result.StepsTaken,
		Frames:   result.Frames,
		Contacts: result.Contacts,
		Metrics:  result.Metrics,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes just the frame table to path.
func ExportCSV(path string, result *walker.Result) error {
	return writeFramesCSV(path, result.Frames)
}

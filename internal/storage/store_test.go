package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/futuroptimist/strider/internal/locomotion"
	"github.com/futuroptimist/strider/internal/mathutil"
	"github.com/futuroptimist/strider/internal/walker"
)

func sampleResult() *walker.Result {
	return &walker.Result{
		Frames: []walker.Frame{
			{
				T: 0.0, LinearSpeed: 1.0,
				Root:  mathutil.Vec3{Y: 1.0},
				Left:  locomotion.FootReport{Foot: locomotion.FootLeft, Offset: -0.02, TargetOffset: -0.02, InContact: true},
				Right: locomotion.FootReport{Foot: locomotion.FootRight, Offset: 0.01, TargetOffset: 0.03},
			},
			{
				T: 0.016, LinearSpeed: 1.1,
				Root:  mathutil.Vec3{Y: 1.0, Z: 0.016},
				Left:  locomotion.FootReport{Foot: locomotion.FootLeft, InContact: true},
				Right: locomotion.FootReport{Foot: locomotion.FootRight, InContact: true},
			},
		},
		Contacts: []walker.Contact{
			{T: 0.0, ContactEvent: locomotion.ContactEvent{Foot: locomotion.FootLeft, Offset: -0.02}},
			{T: 0.016, ContactEvent: locomotion.ContactEvent{Foot: locomotion.FootRight}},
		},
		Metrics:    map[string]float64{"cadence": 1.5},
		StepsTaken: 2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := st.Save("hills", 0.016, 0.032, 7, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Terrain != "hills" || meta.Seed != 7 || meta.Steps != 2 || meta.Contacts != 2 {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Metrics["cadence"] != 1.5 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("list = %+v", runs)
	}
}

func TestListEmptyBase(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}

func TestLoadFramesRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("flat", 0.016, 0.032, 0, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	series, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames: %v", err)
	}

	speeds := series["linear_speed"]
	if len(speeds) != 2 || speeds[0] != 1.0 || speeds[1] != 1.1 {
		t.Errorf("linear_speed = %v", speeds)
	}
	if contacts := series["left_contact"]; len(contacts) != 2 || contacts[0] != 1 {
		t.Errorf("left_contact = %v", contacts)
	}
}

func TestLoadContactsRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("ramp", 0.016, 0.032, 0, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	contacts, err := st.LoadContacts(runID)
	if err != nil {
		t.Fatalf("load contacts: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].Foot != locomotion.FootLeft || contacts[0].Offset != -0.02 {
		t.Errorf("first contact = %+v", contacts[0])
	}
	if contacts[1].T != 0.016 {
		t.Errorf("second contact time = %v", contacts[1].T)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, "stairs", 0.016, 0.032, sampleResult()); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
	if out.Terrain != "stairs" || out.Steps != 2 || len(out.Frames) != 2 {
		t.Errorf("export = terrain %s steps %d frames %d", out.Terrain, out.Steps, len(out.Frames))
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	if err := ExportCSV(path, sampleResult()); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("empty csv")
	}
}

package config

import "github.com/futuroptimist/strider/internal/drive"

var Presets = map[string]map[string]*Config{
	"flat": {
		"stroll": {
			Terrain:  TerrainConfig{Name: "flat"},
			Drive:    DriveConfig{Mode: "constant", Linear: 0.8, MaxSpeed: 3.0},
			Dt:       0.016,
			Duration: 15.0,
		},
		"sprint": {
			Terrain:  TerrainConfig{Name: "flat"},
			Drive:    DriveConfig{Mode: "constant", Linear: 2.8, MaxSpeed: 3.0},
			Dt:       0.016,
			Duration: 10.0,
		},
		"pivot": {
			Terrain: TerrainConfig{Name: "flat"},
			Drive: DriveConfig{
				Mode: "script",
				Segments: []drive.Segment{
					{Duration: 2, Linear: 0.0, Angular: 1.2},
					{Duration: 3, Linear: 1.2, Angular: 0.0},
					{Duration: 2, Linear: 0.0, Angular: -1.2},
				},
				Loop:     true,
				MaxSpeed: 3.0,
			},
			Dt:       0.016,
			Duration: 20.0,
		},
	},
	"ramp": {
		"climb": {
			Terrain:  TerrainConfig{Name: "ramp"},
			Drive:    DriveConfig{Mode: "constant", Linear: 1.0, MaxSpeed: 3.0},
			Dt:       0.016,
			Duration: 12.0,
		},
		"steep": {
			Terrain:  TerrainConfig{Name: "ramp", Params: map[string]float64{"slope": 0.45}},
			Drive:    DriveConfig{Mode: "constant", Linear: 0.7, MaxSpeed: 3.0},
			Dt:       0.016,
			Duration: 15.0,
		},
	},
	"stairs": {
		"ascend": {
			Terrain:  TerrainConfig{Name: "stairs"},
			Drive:    DriveConfig{Mode: "constant", Linear: 0.6, MaxSpeed: 3.0},
			Dt:       0.008,
			Duration: 12.0,
		},
		"rush": {
			Terrain:  TerrainConfig{Name: "stairs"},
			Drive:    DriveConfig{Mode: "constant", Linear: 1.8, MaxSpeed: 3.0},
			Dt:       0.008,
			Duration: 8.0,
		},
	},
	"hills": {
		"wander": {
			Terrain: TerrainConfig{Name: "hills"},
			Drive: DriveConfig{
				Mode: "waypoints",
				Waypoints: []drive.Point{
					{X: 4, Z: 4}, {X: -3, Z: 6}, {X: 0, Z: 0},
				},
				MaxSpeed: 2.0,
			},
			Dt:       0.016,
			Duration: 40.0,
		},
		"rolling": {
			Terrain:  TerrainConfig{Name: "hills", Params: map[string]float64{"amplitude": 0.35}},
			Drive:    DriveConfig{Mode: "constant", Linear: 1.4, Angular: 0.15, MaxSpeed: 3.0},
			Dt:       0.016,
			Duration: 25.0,
		},
	},
}

func GetPreset(terrainName, preset string) *Config {
	group, ok := Presets[terrainName]
	if !ok {
		return nil
	}
	cfg, ok := group[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(terrainName string) []string {
	group, ok := Presets[terrainName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}

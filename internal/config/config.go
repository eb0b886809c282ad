package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/futuroptimist/strider/internal/drive"
	"github.com/futuroptimist/strider/internal/locomotion"
	"github.com/futuroptimist/strider/internal/terrain"
	"github.com/futuroptimist/strider/internal/walker"
)

const (
	DefaultDt       = 0.016
	DefaultDuration = 10.0
	DefaultSpeed    = 1.2
	DefaultMaxSpeed = 3.0
)

type Config struct {
	Terrain  TerrainConfig `yaml:"terrain"`
	Drive    DriveConfig   `yaml:"drive"`
	Rig      RigConfig     `yaml:"rig"`
	Feet     FeetConfig    `yaml:"feet"`
	Blend    BlendConfig   `yaml:"blend"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Seed     int64         `yaml:"seed"`
}

type TerrainConfig struct {
	Name    string             `yaml:"name"`
	Params  map[string]float64 `yaml:"params,omitempty"`
	GridMap string             `yaml:"grid_map,omitempty"` // heightmap file, overrides Name
}

type DriveConfig struct {
	Mode      string          `yaml:"mode"` // constant, script, waypoints
	Linear    float64         `yaml:"linear"`
	Angular   float64         `yaml:"angular"`
	Segments  []drive.Segment `yaml:"segments,omitempty"`
	Loop      bool            `yaml:"loop"`
	Waypoints []drive.Point   `yaml:"waypoints,omitempty"`
	MaxSpeed  float64         `yaml:"max_speed"`
}

type RigConfig struct {
	StanceWidth    float64 `yaml:"stance_width"`
	RootHeight     float64 `yaml:"root_height"`
	BodyFollowRate float64 `yaml:"body_follow_rate"`
}

type FeetConfig struct {
	MaxFootOffset       float64 `yaml:"max_foot_offset"`
	MaxFootPitch        float64 `yaml:"max_foot_pitch"`
	SlopeSampleDistance float64 `yaml:"slope_sample_distance"`
	FootRate            float64 `yaml:"foot_rate"`
	RotationRate        float64 `yaml:"rotation_rate"`
	PelvisRate          float64 `yaml:"pelvis_rate"`
	PelvisWeight        float64 `yaml:"pelvis_weight"`
	MaxPelvisOffset     float64 `yaml:"max_pelvis_offset"`
	ContactTolerance    float64 `yaml:"contact_tolerance"`
}

type BlendConfig struct {
	MaxLinearSpeed       float64 `yaml:"max_linear_speed"`
	IdleToWalk           float64 `yaml:"idle_to_walk"`
	WalkToRun            float64 `yaml:"walk_to_run"`
	TurnThreshold        float64 `yaml:"turn_threshold"`
	TurnMax              float64 `yaml:"turn_max"`
	TurnLinearSpeedLimit float64 `yaml:"turn_linear_speed_limit"`
	LinearRate           float64 `yaml:"linear_rate"`
	TurnRate             float64 `yaml:"turn_rate"`
}

func DefaultConfig() *Config {
	fp := locomotion.DefaultFootPlacementConfig()
	return &Config{
		Terrain: TerrainConfig{Name: "flat"},
		Drive: DriveConfig{
			Mode:     "constant",
			Linear:   DefaultSpeed,
			MaxSpeed: DefaultMaxSpeed,
		},
		Rig: RigConfig{
			StanceWidth:    walker.DefaultStanceWidth,
			RootHeight:     walker.DefaultRootHeight,
			BodyFollowRate: walker.DefaultBodyFollowRate,
		},
		Feet: FeetConfig{
			MaxFootOffset:       fp.MaxFootOffset,
			MaxFootPitch:        fp.MaxFootPitch,
			SlopeSampleDistance: fp.SlopeSampleDistance,
			FootRate:            fp.FootRate,
			RotationRate:        fp.RotationRate,
			PelvisRate:          fp.PelvisRate,
			PelvisWeight:        fp.PelvisWeight,
			MaxPelvisOffset:     fp.MaxPelvisOffset,
			ContactTolerance:    fp.ContactTolerance,
		},
		Blend: BlendConfig{
			MaxLinearSpeed: DefaultMaxSpeed,
		},
		Dt:       DefaultDt,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildField constructs the configured terrain, applying overridden params.
func (c *Config) BuildField() (terrain.Field, error) {
	if c.Terrain.GridMap != "" {
		return terrain.LoadGrid(c.Terrain.GridMap)
	}
	field, err := terrain.NewField(c.Terrain.Name)
	if err != nil {
		return nil, err
	}
	if len(c.Terrain.Params) > 0 {
		pf, ok := field.(terrain.ParamField)
		if !ok {
			return nil, fmt.Errorf("terrain %s does not accept params", c.Terrain.Name)
		}
		for name, value := range c.Terrain.Params {
			if err := pf.SetParam(name, value); err != nil {
				return nil, err
			}
		}
	}
	return field, nil
}

// BuildSource constructs the configured drive source.
func (c *Config) BuildSource() (drive.Source, error) {
	switch c.Drive.Mode {
	case "", "constant":
		return drive.NewConstant(c.Drive.Linear, c.Drive.Angular), nil
	case "script":
		if len(c.Drive.Segments) == 0 {
			return nil, fmt.Errorf("script drive needs at least one segment")
		}
		return drive.NewScript(c.Drive.Segments, c.Drive.Loop), nil
	case "waypoints":
		if len(c.Drive.Waypoints) == 0 {
			return nil, fmt.Errorf("waypoint drive needs at least one point")
		}
		maxSpeed := c.Drive.MaxSpeed
		if maxSpeed <= 0 {
			maxSpeed = DefaultMaxSpeed
		}
		return drive.NewWaypoint(c.Drive.Waypoints, maxSpeed), nil
	default:
		return nil, fmt.Errorf("unknown drive mode: %s", c.Drive.Mode)
	}
}

// BuildOptions maps the config onto walker options.
func (c *Config) BuildOptions() walker.Options {
	return walker.Options{
		StanceWidth:    c.Rig.StanceWidth,
		RootHeight:     c.Rig.RootHeight,
		BodyFollowRate: c.Rig.BodyFollowRate,
		Placement: locomotion.FootPlacementConfig{
			MaxFootOffset:       c.Feet.MaxFootOffset,
			MaxFootPitch:        c.Feet.MaxFootPitch,
			SlopeSampleDistance: c.Feet.SlopeSampleDistance,
			FootRate:            c.Feet.FootRate,
			RotationRate:        c.Feet.RotationRate,
			PelvisRate:          c.Feet.PelvisRate,
			PelvisWeight:        c.Feet.PelvisWeight,
			MaxPelvisOffset:     c.Feet.MaxPelvisOffset,
			ContactTolerance:    c.Feet.ContactTolerance,
		},
		Blend: locomotion.BlendConfig{
			MaxLinearSpeed:       c.Blend.MaxLinearSpeed,
			IdleToWalk:           c.Blend.IdleToWalk,
			WalkToRun:            c.Blend.WalkToRun,
			TurnThreshold:        c.Blend.TurnThreshold,
			TurnMax:              c.Blend.TurnMax,
			TurnLinearSpeedLimit: c.Blend.TurnLinearSpeedLimit,
			LinearRate:           c.Blend.LinearRate,
			TurnRate:             c.Blend.TurnRate,
		},
	}
}

// BuildWalker wires the whole configured avatar.
func (c *Config) BuildWalker() (*walker.Walker, error) {
	field, err := c.BuildField()
	if err != nil {
		return nil, err
	}
	src, err := c.BuildSource()
	if err != nil {
		return nil, err
	}
	return walker.New(field, src, c.BuildOptions())
}

// RunConfig maps the timing fields onto a walker run config.
func (c *Config) RunConfig() walker.Config {
	return walker.Config{Dt: c.Dt, Duration: c.Duration, Seed: c.Seed}
}

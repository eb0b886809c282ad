package terrain

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Grid is a regularly sampled heightmap with bilinear interpolation between
// samples. Queries outside the grid clamp to the nearest edge sample.
// Rows index Z, columns index X.
type Grid struct {
	CellSize float64     `yaml:"cell_size"`
	OriginX  float64     `yaml:"origin_x"`
	OriginZ  float64     `yaml:"origin_z"`
	Rows     [][]float64 `yaml:"rows"`
}

func NewGrid(rows [][]float64, cellSize float64) (*Grid, error) {
	g := &Grid{CellSize: cellSize, Rows: rows}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadGrid reads a heightmap from a YAML file.
func LoadGrid(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g := &Grid{}
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("failed to parse heightmap: %w", err)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) validate() error {
	if g.CellSize <= 0 {
		return fmt.Errorf("grid: cell size must be positive, got %f", g.CellSize)
	}
	if len(g.Rows) < 2 {
		return fmt.Errorf("grid: need at least 2 rows, got %d", len(g.Rows))
	}
	width := len(g.Rows[0])
	if width < 2 {
		return fmt.Errorf("grid: need at least 2 columns, got %d", width)
	}
	for i, row := range g.Rows {
		if len(row) != width {
			return fmt.Errorf("grid: row %d has %d columns, want %d", i, len(row), width)
		}
	}
	return nil
}

func (g *Grid) Name() string { return "grid" }

func (g *Grid) HeightAt(x, z float64) float64 {
	fx := (x - g.OriginX) / g.CellSize
	fz := (z - g.OriginZ) / g.CellSize

	maxX := float64(len(g.Rows[0]) - 1)
	maxZ := float64(len(g.Rows) - 1)
	fx = math.Min(math.Max(fx, 0), maxX)
	fz = math.Min(math.Max(fz, 0), maxZ)

	x0 := int(fx)
	z0 := int(fz)
	x1 := x0 + 1
	z1 := z0 + 1
	if x1 > int(maxX) {
		x1 = x0
	}
	if z1 > int(maxZ) {
		z1 = z0
	}

	tx := fx - float64(x0)
	tz := fz - float64(z0)

	h00 := g.Rows[z0][x0]
	h10 := g.Rows[z0][x1]
	h01 := g.Rows[z1][x0]
	h11 := g.Rows[z1][x1]

	top := h00 + (h10-h00)*tx
	bottom := h01 + (h11-h01)*tx
	return top + (bottom-top)*tz
}

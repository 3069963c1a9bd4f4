// Package systems provides the simulation state owners and ECS systems.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	Delta  r2.Vec  // From the query origin to the neighbour
	DistSq float64 // Squared distance
}

// SpatialGrid provides cell-based neighbour lookups over the window.
// Positions outside the window are clamped into the border cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	originX  float64
	originY  float64
	cells    [][]ecs.Entity
}

// NewSpatialGrid creates a grid covering a window of the given size plus a
// border of one cell on each side for creatures entering from off-screen.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if !(cellSize > 0) {
		cellSize = 64
	}
	width = math.Max(width, 1)
	height = math.Max(height, 1)
	cols := int(width/cellSize) + 3
	rows := int(height/cellSize) + 3

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		originX:  -cellSize,
		originY:  -cellSize,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, p r2.Vec) {
	col, row := g.cellOf(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], e)
}

// MaxQueryResults caps the number of neighbours returned by spatial queries.
const MaxQueryResults = 64

// QueryRadiusInto appends entities within radius of p to dst (up to
// MaxQueryResults) and returns the updated slice. Reuse dst across calls.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, p r2.Vec, radius float64, exclude ecs.Entity, posMap *ecs.Map[components.Position]) []Neighbor {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellOf(p)
	radiusSq := radius * radius

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, e := range g.cells[row*g.cols+col] {
				if e == exclude {
					continue
				}
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				delta := r2.Sub(pos.Vec(), p)
				distSq := r2.Norm2(delta)
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, Delta: delta, DistSq: distSq})
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}
	return dst
}

// cellOf returns the clamped cell coordinates for a position.
func (g *SpatialGrid) cellOf(p r2.Vec) (col, row int) {
	x := (p.X - g.originX) / g.cellSize
	y := (p.Y - g.originY) / g.cellSize
	if math.IsNaN(x) {
		x = 0
	}
	if math.IsNaN(y) {
		y = 0
	}
	col = clampInt(int(math.Floor(x)), 0, g.cols-1)
	row = clampInt(int(math.Floor(y)), 0, g.rows-1)
	return col, row
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

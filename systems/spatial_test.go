package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
)

type gridFixture struct {
	world  *ecs.World
	grid   *SpatialGrid
	posMap *ecs.Map[components.Position]
	mapper *ecs.Map1[components.Position]
}

func newGridFixture() *gridFixture {
	w := ecs.NewWorld()
	return &gridFixture{
		world:  w,
		grid:   NewSpatialGrid(800, 600, 120),
		posMap: ecs.NewMap[components.Position](w),
		mapper: ecs.NewMap1[components.Position](w),
	}
}

func (f *gridFixture) add(x, y float64) ecs.Entity {
	e := f.mapper.NewEntity(&components.Position{X: x, Y: y})
	f.grid.Insert(e, r2.Vec{X: x, Y: y})
	return e
}

func TestQueryRadius(t *testing.T) {
	f := newGridFixture()
	self := f.add(100, 100)
	near := f.add(120, 100)
	f.add(200, 100)
	diag := f.add(130, 140)

	got := f.grid.QueryRadiusInto(nil, r2.Vec{X: 100, Y: 100}, 50, self, f.posMap)

	found := map[ecs.Entity]Neighbor{}
	for _, n := range got {
		found[n.E] = n
	}
	require.Len(t, found, 2)
	assert.Contains(t, found, near)
	assert.Contains(t, found, diag)
	assert.NotContains(t, found, self)

	assert.Equal(t, r2.Vec{X: 20, Y: 0}, found[near].Delta)
	assert.InDelta(t, 2500, found[diag].DistSq, 1e-9)
}

func TestQueryRadiusOutsideWindow(t *testing.T) {
	f := newGridFixture()
	off := f.add(-500, -500)
	f.add(50, 50)

	got := f.grid.QueryRadiusInto(nil, r2.Vec{X: -500, Y: -500}, 10, ecs.Entity{}, f.posMap)
	require.Len(t, got, 1)
	assert.Equal(t, off, got[0].E)
	assert.Zero(t, got[0].DistSq)
}

func TestQueryRadiusCap(t *testing.T) {
	f := newGridFixture()
	for i := 0; i < MaxQueryResults+20; i++ {
		f.add(300, 300)
	}
	got := f.grid.QueryRadiusInto(nil, r2.Vec{X: 300, Y: 300}, 5, ecs.Entity{}, f.posMap)
	assert.Len(t, got, MaxQueryResults)
}

func TestGridClear(t *testing.T) {
	f := newGridFixture()
	f.add(300, 300)
	f.grid.Clear()
	got := f.grid.QueryRadiusInto(nil, r2.Vec{X: 300, Y: 300}, 50, ecs.Entity{}, f.posMap)
	assert.Empty(t, got)
}

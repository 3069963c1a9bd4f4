package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
)

// BoidState is the kinematic state a boid steers from.
type BoidState struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Heading float64
}

// NeighborState is what a boid sees of one neighbour.
type NeighborState struct {
	Delta  r2.Vec // From the boid to the neighbour
	DistSq float64
	Vel    r2.Vec
}

// RepulsorState is a repulsor's position and field.
type RepulsorState struct {
	Pos      r2.Vec
	Strength float64
	Range    float64
}

// GoalReachedRadius is how close a boid gets to its goal before dropping it.
const GoalReachedRadius = 16

// Steer computes a boid's next velocity and heading.
//
// Cohesion pulls towards the centroid of visible neighbours, separation pushes
// away from neighbours inside the protected range weighted by inverse
// distance, alignment matches the neighbours' average heading. Repulsors push
// outward with Strength*(1-d/Range). All contributions are accelerations
// summed before the turn rate limit and speed clamp are applied.
//
// neighbors may be capped at MaxQueryResults in grid-cell order, so a crowd
// larger than that is sampled rather than reduced to the nearest ones.
func Steer(self BoidState, b components.Boid, neighbors []NeighborState, repulsors []RepulsorState, dt float64, rng Random) (r2.Vec, float64) {
	if !(dt > 0) {
		return self.Vel, self.Heading
	}
	forward := unitOrZero(self.Vel)
	if forward == (r2.Vec{}) {
		forward = headingVec(self.Heading)
	}
	halfFOV := b.FOV / 2
	viewSq := b.ViewRange * b.ViewRange

	var accel r2.Vec
	var centroid, avgHeading, push r2.Vec
	visible := 0
	for _, n := range neighbors {
		if n.DistSq > viewSq {
			continue
		}
		d := math.Sqrt(n.DistSq)
		if d == 0 {
			continue
		}
		if b.FOV > 0 && b.FOV < 2*math.Pi {
			cos := r2.Dot(forward, r2.Scale(1/d, n.Delta))
			if math.Acos(math.Max(-1, math.Min(1, cos))) > halfFOV {
				continue
			}
		}
		visible++
		centroid = r2.Add(centroid, n.Delta)
		avgHeading = r2.Add(avgHeading, unitOrZero(n.Vel))
		if d < b.ProtectedRange {
			push = r2.Add(push, r2.Scale(-b.ProtectedRange/(d*d), n.Delta))
		}
	}
	if visible > 0 {
		inv := 1 / float64(visible)
		accel = r2.Add(accel, r2.Scale(b.Cohesion*inv, centroid))
		align := r2.Sub(unitOrZero(r2.Scale(inv, avgHeading)), forward)
		accel = r2.Add(accel, r2.Scale(b.Alignment*b.MaxSpeed, align))
		accel = r2.Add(accel, r2.Scale(b.Separation*b.MaxSpeed, push))
	}

	for _, rep := range repulsors {
		away := r2.Sub(self.Pos, rep.Pos)
		d := r2.Norm(away)
		if rep.Range <= 0 || d >= rep.Range {
			continue
		}
		dir := unitOrZero(away)
		if dir == (r2.Vec{}) {
			dir = r2.Scale(-1, forward)
		}
		accel = r2.Add(accel, r2.Scale(rep.Strength*(1-d/rep.Range)*b.MaxSpeed, dir))
	}

	if b.HasGoal && b.GoalWeight != 0 {
		accel = r2.Add(accel, r2.Scale(b.GoalWeight*b.MaxSpeed, unitOrZero(r2.Sub(b.Goal, self.Pos))))
	}
	if b.Jitter != 0 && rng != nil {
		j := r2.Vec{X: rng.Range(-1, 1), Y: rng.Range(-1, 1)}
		accel = r2.Add(accel, r2.Scale(b.Jitter*b.MaxSpeed, j))
	}

	desired := r2.Add(self.Vel, r2.Scale(dt, accel))
	if !finite(desired) {
		desired = self.Vel
	}
	current := headingOf(self.Vel, self.Heading)
	heading := turnTowards(current, headingOf(desired, current), b.MaxTurnRate*dt)

	speed := r2.Norm(desired)
	speed = math.Max(b.MinSpeed, math.Min(b.MaxSpeed, speed))
	return r2.Scale(speed, headingVec(heading)), heading
}

type steerResult struct {
	e       ecs.Entity
	vel     r2.Vec
	heading float64
}

// FlockingSystem steers fish schools and integrates their positions.
type FlockingSystem struct {
	filter    ecs.Filter4[components.Position, components.Velocity, components.Rotation, components.Boid]
	repFilter ecs.Filter2[components.Position, components.Repulsor]
	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	rotMap    *ecs.Map[components.Rotation]
	grid      *SpatialGrid

	neighbors []Neighbor
	states    []NeighborState
	repulsors []RepulsorState
	results   []steerResult
}

// NewFlockingSystem creates a flocking system using grid for neighbour search.
func NewFlockingSystem(w *ecs.World, grid *SpatialGrid) *FlockingSystem {
	return &FlockingSystem{
		filter:    *ecs.NewFilter4[components.Position, components.Velocity, components.Rotation, components.Boid](w),
		repFilter: *ecs.NewFilter2[components.Position, components.Repulsor](w),
		posMap:    ecs.NewMap[components.Position](w),
		velMap:    ecs.NewMap[components.Velocity](w),
		rotMap:    ecs.NewMap[components.Rotation](w),
		grid:      grid,
	}
}

// Update steers every boid from the same snapshot of its neighbours, then
// applies the new velocities and moves the boids.
func (s *FlockingSystem) Update(dt float64, rng Random) {
	s.repulsors = s.repulsors[:0]
	rq := s.repFilter.Query()
	for rq.Next() {
		pos, rep := rq.Get()
		s.repulsors = append(s.repulsors, RepulsorState{Pos: pos.Vec(), Strength: rep.Strength, Range: rep.Range})
	}

	s.grid.Clear()
	query := s.filter.Query()
	for query.Next() {
		pos, _, _, _ := query.Get()
		s.grid.Insert(query.Entity(), pos.Vec())
	}

	s.results = s.results[:0]
	query = s.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, vel, rot, boid := query.Get()
		if boid.HasGoal && r2.Norm(r2.Sub(boid.Goal, pos.Vec())) < GoalReachedRadius {
			boid.HasGoal = false
		}

		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos.Vec(), boid.ViewRange, e, s.posMap)
		s.states = s.states[:0]
		for _, n := range s.neighbors {
			st := NeighborState{Delta: n.Delta, DistSq: n.DistSq}
			if v := s.velMap.Get(n.E); v != nil {
				st.Vel = v.Vec()
			}
			s.states = append(s.states, st)
		}

		self := BoidState{Pos: pos.Vec(), Vel: vel.Vec(), Heading: rot.Heading}
		v, h := Steer(self, *boid, s.states, s.repulsors, dt, rng)
		s.results = append(s.results, steerResult{e: e, vel: v, heading: h})
	}

	for _, r := range s.results {
		pos := s.posMap.Get(r.e)
		vel := s.velMap.Get(r.e)
		rot := s.rotMap.Get(r.e)
		if pos == nil || vel == nil || rot == nil {
			continue
		}
		vel.Set(r.vel)
		rot.Heading = r.heading
		pos.Set(r2.Add(pos.Vec(), r2.Scale(dt, r.vel)))
	}
}

package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
)

// arriveDistSq is the squared distance at which a target counts as reached.
const arriveDistSq = 1.0

// DespawnQueue collects entities to remove at the end of the tick.
// Removal during a query would invalidate the iterator.
type DespawnQueue struct {
	entities []ecs.Entity
	seen     map[ecs.Entity]struct{}
}

// Add queues e for removal. Queuing the same entity twice is harmless.
func (q *DespawnQueue) Add(e ecs.Entity) {
	if q.seen == nil {
		q.seen = make(map[ecs.Entity]struct{})
	}
	if _, ok := q.seen[e]; ok {
		return
	}
	q.seen[e] = struct{}{}
	q.entities = append(q.entities, e)
}

// Len returns the number of queued entities.
func (q *DespawnQueue) Len() int {
	return len(q.entities)
}

// Apply removes every queued entity that is still alive and empties the
// queue. onRemove, if non-nil, is called before each removal.
func (q *DespawnQueue) Apply(w *ecs.World, onRemove func(ecs.Entity)) int {
	removed := 0
	for _, e := range q.entities {
		if !w.Alive(e) {
			continue
		}
		if onRemove != nil {
			onRemove(e)
		}
		w.RemoveEntity(e)
		removed++
	}
	q.entities = q.entities[:0]
	clear(q.seen)
	return removed
}

// MovementSystem moves non-boid entities: towards a target point, or with a
// constant velocity. It also removes creatures that left the window and
// expired waves.
type MovementSystem struct {
	targetFilter   ecs.Filter2[components.Position, components.Target]
	velocityFilter ecs.Filter2[components.Position, components.Velocity]
	creatureFilter ecs.Filter2[components.Position, components.Creature]
	waveFilter     ecs.Filter1[components.Wave]
	targetMap      *ecs.Map[components.Target]
	velMap         *ecs.Map[components.Velocity]
	rotMap         *ecs.Map[components.Rotation]
	boidMap        *ecs.Map[components.Boid]
	playerMap      *ecs.Map[components.Player]
	creatureMap    *ecs.Map[components.Creature]

	despawnBuffer float64
	turnLerp      float64
}

// NewMovementSystem creates a movement system.
// despawnBuffer is how far outside the window a creature may go before removal;
// turnLerp is the per-second rotation smoothing for creatures facing their movement.
func NewMovementSystem(w *ecs.World, despawnBuffer, turnLerp float64) *MovementSystem {
	return &MovementSystem{
		targetFilter:   *ecs.NewFilter2[components.Position, components.Target](w),
		velocityFilter: *ecs.NewFilter2[components.Position, components.Velocity](w),
		creatureFilter: *ecs.NewFilter2[components.Position, components.Creature](w),
		waveFilter:     *ecs.NewFilter1[components.Wave](w),
		targetMap:      ecs.NewMap[components.Target](w),
		velMap:         ecs.NewMap[components.Velocity](w),
		rotMap:         ecs.NewMap[components.Rotation](w),
		boidMap:        ecs.NewMap[components.Boid](w),
		playerMap:      ecs.NewMap[components.Player](w),
		creatureMap:    ecs.NewMap[components.Creature](w),
		despawnBuffer:  despawnBuffer,
		turnLerp:       turnLerp,
	}
}

// MoveTowards moves entities with a Target towards their point. Arrival is
// reported once per point; entities with RemoveOnArrival are queued for removal.
func (s *MovementSystem) MoveTowards(dt float64, events *Events, despawn *DespawnQueue) {
	query := s.targetFilter.Query()
	for query.Next() {
		e := query.Entity()
		pos, target := query.Get()
		if s.playerMap.Has(e) {
			continue
		}

		prev := pos.Vec()
		next := moveTowards(prev, target.Point, target.Speed*dt)
		pos.Set(next)

		moved := r2.Sub(next, prev)
		if s.velMap.Has(e) && dt > 0 {
			s.velMap.Get(e).Set(r2.Scale(1/dt, moved))
		}
		if s.rotMap.Has(e) {
			s.faceMovement(s.rotMap.Get(e), moved, dt)
		}

		if target.Arrived || r2.Norm2(r2.Sub(next, target.Point)) >= arriveDistSq {
			continue
		}
		target.Arrived = true
		ev := CreatureArrivedAtTarget{Entity: e}
		if s.creatureMap.Has(e) {
			ev.Species = s.creatureMap.Get(e).Species
		}
		events.Emit(ev)
		if target.RemoveOnArrival {
			despawn.Add(e)
		}
	}
}

// MoveWithVelocity integrates entities that have a velocity but are neither
// boids, target seekers nor the player.
func (s *MovementSystem) MoveWithVelocity(dt float64) {
	query := s.velocityFilter.Query()
	for query.Next() {
		e := query.Entity()
		if s.targetMap.Has(e) || s.boidMap.Has(e) || s.playerMap.Has(e) {
			continue
		}
		pos, vel := query.Get()
		v := vel.Vec()
		pos.Set(r2.Add(pos.Vec(), r2.Scale(dt, v)))
		if s.rotMap.Has(e) {
			s.faceMovement(s.rotMap.Get(e), v, dt)
		}
	}
}

// faceMovement turns rot towards the direction of dir.
func (s *MovementSystem) faceMovement(rot *components.Rotation, dir r2.Vec, dt float64) {
	if r2.Norm2(dir) < 1e-12 {
		return
	}
	want := headingOf(dir, rot.Heading)
	t := s.turnLerp * dt
	if t <= 0 || t >= 1 {
		rot.Heading = want
		return
	}
	rot.Heading = normalizeAngle(rot.Heading + normalizeAngle(want-rot.Heading)*t)
}

// DespawnOutOfWindow queues creatures further than the despawn buffer outside
// the window. Nothing is removed while the window is invalid.
func (s *MovementSystem) DespawnOutOfWindow(win Window, despawn *DespawnQueue) int {
	if !win.Valid() {
		return 0
	}
	n := 0
	query := s.creatureFilter.Query()
	for query.Next() {
		pos, c := query.Get()
		if c.Species == components.SpeciesPlayer {
			continue
		}
		if win.Outside(pos.Vec(), s.despawnBuffer) {
			despawn.Add(query.Entity())
			n++
		}
	}
	return n
}

// ExpireWaves queues waves whose lifetime has passed.
func (s *MovementSystem) ExpireWaves(now float64, despawn *DespawnQueue) {
	query := s.waveFilter.Query()
	for query.Next() {
		if wave := query.Get(); now >= wave.ExpiresAt {
			despawn.Add(query.Entity())
		}
	}
}

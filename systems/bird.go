package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
)

// BirdSystem runs the bird curiosity state machine.
//
// Neutral birds fly their spawn path. A neutral bird close enough to a
// jittered point near the player becomes curious and circles the player
// until its deadline, shrinking in scale. It then loses curiosity, heads
// back to its path exit and regrows; the behaviour is removed once the bird
// is back to full size.
type BirdSystem struct {
	filter      ecs.Filter4[components.Position, components.Target, components.Path, components.BirdBehavior]
	behaviorMap *ecs.Map[components.BirdBehavior]
	cfg         config.BirdConfig

	done []ecs.Entity
}

// NewBirdSystem creates a bird system.
func NewBirdSystem(w *ecs.World, cfg config.BirdConfig) *BirdSystem {
	return &BirdSystem{
		filter:      *ecs.NewFilter4[components.Position, components.Target, components.Path, components.BirdBehavior](w),
		behaviorMap: ecs.NewMap[components.BirdBehavior](w),
		cfg:         cfg,
	}
}

// NewBehavior returns the initial behaviour for a freshly spawned bird.
func (s *BirdSystem) NewBehavior(rng Random) components.BirdBehavior {
	b := components.BirdBehavior{Mode: components.BirdNeutral, Scale: 1}
	if rng.Chance(s.cfg.IncuriousChance) {
		b.Mode = components.BirdIncurious
	}
	return b
}

// Update advances every bird by one tick. now is simulation time in seconds.
func (s *BirdSystem) Update(now, dt float64, player PlayerView, rng Random, events *Events) {
	s.done = s.done[:0]
	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, target, path, b := query.Get()
		before := b.Mode
		finished := s.Step(b, target, path, pos.Vec(), now, dt, player, rng)

		if b.Mode != before {
			switch b.Mode {
			case components.BirdCurious:
				events.Emit(CuriosityChanged{Entity: e, Species: components.SpeciesBird, Curious: true})
			case components.BirdLosingCuriosity:
				events.Emit(CuriosityChanged{Entity: e, Species: components.SpeciesBird, Curious: false})
			}
		}
		if finished {
			s.done = append(s.done, e)
		}
	}

	for _, e := range s.done {
		s.behaviorMap.Remove(e)
	}
}

// Step applies one tick of the state machine to b and steers target.
// Returns true when the bird finished losing curiosity and the behaviour
// should be removed.
func (s *BirdSystem) Step(b *components.BirdBehavior, target *components.Target, path *components.Path, pos r2.Vec, now, dt float64, player PlayerView, rng Random) bool {
	switch b.Mode {
	case components.BirdIncurious:
		return false

	case components.BirdNeutral:
		if !player.Present {
			return false
		}
		candidate := r2.Add(player.Pos, s.jitter(rng))
		if r2.Norm(r2.Sub(candidate, pos)) >= s.cfg.CuriosityThreshold {
			return false
		}
		b.Mode = components.BirdCurious
		b.Until = now + rng.Range(s.cfg.CuriousMin, s.cfg.CuriousMax)
		b.Offset = s.jitter(rng)
		s.retarget(target, r2.Add(player.Pos, b.Offset), false)
		return false

	case components.BirdCurious:
		b.Scale = max(s.cfg.MinScale, b.Scale-s.cfg.ShrinkRate*dt)
		if now >= b.Until {
			b.Mode = components.BirdLosingCuriosity
			s.retarget(target, path.End, true)
			return false
		}
		if !player.Present {
			return false
		}
		point := r2.Add(player.Pos, b.Offset)
		if r2.Norm(r2.Sub(point, pos)) < s.cfg.ArriveDistance {
			b.Offset = s.jitter(rng)
			point = r2.Add(player.Pos, b.Offset)
		}
		s.retarget(target, point, false)
		return false

	case components.BirdLosingCuriosity:
		b.Scale += s.cfg.RegrowRate * dt
		if b.Scale >= 1 {
			b.Scale = 1
			return true
		}
		return false
	}
	return false
}

// LosingCuriosityDuration is how long a bird that reached minimum scale
// takes to regrow to full size.
func (s *BirdSystem) LosingCuriosityDuration() float64 {
	if s.cfg.RegrowRate <= 0 {
		return 0
	}
	return (1 - s.cfg.MinScale) / s.cfg.RegrowRate
}

func (s *BirdSystem) jitter(rng Random) r2.Vec {
	j := s.cfg.Jitter
	return r2.Vec{X: rng.Range(-j, j), Y: rng.Range(-j, j)}
}

func (s *BirdSystem) retarget(target *components.Target, point r2.Vec, removeOnArrival bool) {
	if target.Point != point {
		target.Arrived = false
	}
	target.Point = point
	target.RemoveOnArrival = removeOnArrival
}

package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
)

// BabyWhaleStatus is shared by the adult and baby whale logic. An adult whale
// that became curious during a leg sets HasWhale; the next flip consumes it
// and spawns a baby that departs at DepartureTime.
type BabyWhaleStatus struct {
	HasWhale      bool
	DepartureTime float64 // Leg distance
}

// FollowVelocity returns the velocity that moves a follower from pos towards
// point at speed, switching to the leader's velocity scaled by match once
// within followDistance so the follower does not overshoot.
func FollowVelocity(pos, point, leaderVel r2.Vec, speed, followDistance, match float64) r2.Vec {
	delta := r2.Sub(point, pos)
	if r2.Norm(delta) <= followDistance {
		return r2.Scale(match, leaderVel)
	}
	return r2.Scale(speed, unitOrZero(delta))
}

// WhaleSystem runs adult whale curiosity and following, and the baby whale
// follow and departure logic.
type WhaleSystem struct {
	adultFilter ecs.Filter3[components.Position, components.Velocity, components.WhaleBehavior]
	babyFilter  ecs.Filter3[components.Position, components.Velocity, components.BabyWhale]
	babyMap     *ecs.Map[components.BabyWhale]
	targetMap   *ecs.Map[components.Target]

	Status BabyWhaleStatus

	cfg         config.WhaleConfig
	travelSpeed float64
	margin      float64
	departing   []ecs.Entity
}

// NewWhaleSystem creates a whale system. travelSpeed is the player's swim
// speed in pixels per second; margin is how far outside the window departing
// babies head to.
func NewWhaleSystem(w *ecs.World, cfg config.WhaleConfig, travelSpeed, margin float64) *WhaleSystem {
	return &WhaleSystem{
		adultFilter: *ecs.NewFilter3[components.Position, components.Velocity, components.WhaleBehavior](w),
		babyFilter:  *ecs.NewFilter3[components.Position, components.Velocity, components.BabyWhale](w),
		babyMap:     ecs.NewMap[components.BabyWhale](w),
		targetMap:   ecs.NewMap[components.Target](w),
		cfg:         cfg,
		travelSpeed: travelSpeed,
		margin:      margin,
	}
}

// CrossingSpeed is the speed of an adult whale that has not noticed the player.
func (s *WhaleSystem) CrossingSpeed() float64 {
	return s.cfg.CrossingSpeed * s.travelSpeed
}

// UpdateAdults checks travelling adults for curiosity and steers curious
// adults towards a point just ahead of the player. Without a player nothing
// changes.
func (s *WhaleSystem) UpdateAdults(now float64, player PlayerView, rng Random, events *Events) {
	if !player.Present {
		return
	}
	lead := r2.Add(player.Pos, r2.Scale(s.cfg.FollowLead, player.Forward()))
	query := s.adultFilter.Query()
	for query.Next() {
		pos, vel, b := query.Get()
		switch b.Mode {
		case components.WhaleTravelling:
			j := s.cfg.Jitter
			candidate := r2.Add(player.Pos, r2.Vec{X: rng.Range(-j, j), Y: rng.Range(-j, j)})
			if r2.Norm(r2.Sub(candidate, pos.Vec())) >= s.cfg.CuriosityDistance {
				continue
			}
			b.Mode = components.WhaleCurious
			b.Until = math.Inf(1)
			s.Status.HasWhale = true
			events.Emit(CuriosityChanged{Entity: query.Entity(), Species: components.SpeciesAdultWhale, Curious: true})
			fallthrough
		case components.WhaleCurious:
			if now >= b.Until {
				continue
			}
			vel.Set(s.follow(pos.Vec(), lead, player.Vel))
		}
	}
}

// ConsumeForFlip is called after a flip has reset the leg. When an adult
// whale was met during the previous leg it clears the flag, commits the
// departure distance and returns true so the caller spawns a baby.
func (s *WhaleSystem) ConsumeForFlip(distance float64, rng Random) bool {
	if !s.Status.HasWhale {
		s.Status.DepartureTime = 0
		return false
	}
	s.Status.HasWhale = false
	s.Status.DepartureTime = distance + rng.Range(s.cfg.DepartureMin, s.cfg.DepartureMax)
	return true
}

// BabyPoint returns where a baby trails the player.
func (s *WhaleSystem) BabyPoint(player PlayerView) r2.Vec {
	return r2.Sub(player.Pos, r2.Scale(s.cfg.BabyLag, player.Forward()))
}

// UpdateBabies keeps babies trailing the player until the leg distance
// reaches the departure time, then removes the baby tag and sends the whale
// to a point outside the window.
func (s *WhaleSystem) UpdateBabies(distance float64, player PlayerView, win Window, rng Random, events *Events) {
	s.departing = s.departing[:0]
	point := s.BabyPoint(player)
	query := s.babyFilter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		if distance >= s.Status.DepartureTime {
			s.departing = append(s.departing, query.Entity())
			continue
		}
		if player.Present {
			vel.Set(s.follow(pos.Vec(), point, player.Vel))
		}
	}

	s.depart(win, rng, events)
}

// DepartAll sends every baby away immediately, such as when a new leg starts.
func (s *WhaleSystem) DepartAll(win Window, rng Random, events *Events) {
	s.departing = s.departing[:0]
	query := s.babyFilter.Query()
	for query.Next() {
		s.departing = append(s.departing, query.Entity())
	}
	s.depart(win, rng, events)
}

func (s *WhaleSystem) depart(win Window, rng Random, events *Events) {
	for _, e := range s.departing {
		exit, ok := PointOutside(win, s.margin, rng)
		if !ok {
			// Retried on a later tick once the window is usable.
			continue
		}
		s.babyMap.Remove(e)
		s.targetMap.Add(e, &components.Target{Point: exit, Speed: s.travelSpeed, RemoveOnArrival: true})
		events.Emit(BabyWhaleDeparted{Entity: e})
	}
	s.departing = s.departing[:0]
}

// Reset clears the shared status for a new game.
func (s *WhaleSystem) Reset() {
	s.Status = BabyWhaleStatus{}
}

func (s *WhaleSystem) follow(pos, point, leaderVel r2.Vec) r2.Vec {
	return FollowVelocity(pos, point, leaderVel, s.cfg.FollowSpeed*s.travelSpeed, s.cfg.FollowDistance, s.cfg.MatchFactor)
}

package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
)

// TravelHeading is the heading of a whale swimming straight down the screen.
const TravelHeading = math.Pi / 2

// turnExaggeration scales the smoothed turn into the drawn heading.
const turnExaggeration = 1.3

// PlayerView is the read-only player whale transform other systems consume.
type PlayerView struct {
	Entity  ecs.Entity
	Pos     r2.Vec
	Vel     r2.Vec
	Heading float64
	Present bool
}

// Forward returns the unit vector the player faces.
func (p PlayerView) Forward() r2.Vec {
	return headingVec(p.Heading)
}

// PlayerSystem swims the player whale in from above the screen and then
// moves it from the movement intent.
type PlayerSystem struct {
	filter ecs.Filter4[components.Position, components.Velocity, components.Rotation, components.Player]
	cfg    config.PlayerConfig
}

// NewPlayerSystem creates a player system.
func NewPlayerSystem(w *ecs.World, cfg config.PlayerConfig) *PlayerSystem {
	return &PlayerSystem{
		filter: *ecs.NewFilter4[components.Position, components.Velocity, components.Rotation, components.Player](w),
		cfg:    cfg,
	}
}

// RestPoint returns where the player settles after arriving.
func (s *PlayerSystem) RestPoint(win Window) r2.Vec {
	return r2.Vec{X: win.W / 2, Y: win.H * s.cfg.RestFraction}
}

// Update moves the player. intent is in screen-independent axes: +X is right,
// +Y is towards the top of the screen. Invalid windows skip the tick.
func (s *PlayerSystem) Update(dt float64, intent r2.Vec, win Window) {
	if !win.Valid() || !(dt > 0) {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		pos, vel, rot, player := query.Get()
		prev := pos.Vec()

		if !player.Arrived {
			rest := s.RestPoint(win)
			next := moveTowards(prev, rest, s.cfg.ArrivalSpeed*dt)
			pos.Set(next)
			vel.Set(r2.Scale(1/dt, r2.Sub(next, prev)))
			rot.Heading = TravelHeading
			if r2.Norm2(r2.Sub(next, rest)) < arriveDistSq {
				player.Arrived = true
			}
			continue
		}

		dir := unitOrZero(r2.Vec{X: intent.X, Y: -intent.Y})
		next := r2.Add(prev, r2.Scale(s.cfg.LateralSpeed*dt, dir))
		if clamped, ok := win.ClampWithBuffer(next, s.cfg.ClampBuffer); ok {
			next = clamped
		}
		pos.Set(next)
		vel.Set(r2.Scale(1/dt, r2.Sub(next, prev)))

		player.Turn = lerp(player.Turn, intent.X*s.cfg.MovementScale, s.cfg.TurnLerp)
		rot.Heading = TravelHeading - player.Turn*turnExaggeration
	}
}

// ResetForFlip straightens the player and moves it back to the middle column.
func (s *PlayerSystem) ResetForFlip(win Window) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, rot, player := query.Get()
		player.Turn = 0
		rot.Heading = TravelHeading
		vel.X, vel.Y = 0, 0
		if win.Valid() {
			pos.X = win.W / 2
		}
	}
}

// View returns the player transform, or a view with Present false when no
// player exists yet.
func (s *PlayerSystem) View() PlayerView {
	var view PlayerView
	query := s.filter.Query()
	for query.Next() {
		pos, vel, rot, _ := query.Get()
		view = PlayerView{
			Entity:  query.Entity(),
			Pos:     pos.Vec(),
			Vel:     vel.Vec(),
			Heading: rot.Heading,
			Present: true,
		}
	}
	return view
}

// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Species identifies the kind of creature an entity is.
type Species uint8

const (
	SpeciesBird Species = iota
	SpeciesFish
	SpeciesShip
	SpeciesIceberg
	SpeciesAdultWhale
	SpeciesBabyWhale
	SpeciesPlayer
)

// NumSpecies is the number of Species values.
const NumSpecies = int(SpeciesPlayer) + 1

// Position represents an entity's screen position in pixels.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Set stores v as the position.
func (p *Position) Set(v r2.Vec) { p.X, p.Y = v.X, v.Y }

// Velocity represents an entity's velocity in pixels per second.
type Velocity struct {
	X, Y float64
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

// Set stores v as the velocity.
func (v *Velocity) Set(vec r2.Vec) { v.X, v.Y = vec.X, vec.Y }

// Rotation holds the direction an entity faces.
type Rotation struct {
	Heading float64 // radians, 0 = +X
}

// Creature tags every spawned creature with its species.
type Creature struct {
	Species Species
}

// Player marks the player-controlled whale.
type Player struct {
	Arrived bool    // False while swimming in from above the screen
	Turn    float64 // Smoothed sideways rotation in radians
}

// BabyWhale marks a baby whale that is still following the player.
type BabyWhale struct{}

// Wave is an ambient decoration that expires after a fixed time.
type Wave struct {
	ExpiresAt float64 // Simulation seconds
}

// Target makes an entity move towards a point at constant speed.
type Target struct {
	Point           r2.Vec
	Speed           float64
	RemoveOnArrival bool // Despawn the entity on arrival instead of stopping
	Arrived         bool // Set once the point is reached, cleared when Point changes
}

// Path is the off-screen to off-screen route a creature was spawned on.
type Path struct {
	Start, End r2.Vec
}

// Repulsor pushes boids away within Range.
type Repulsor struct {
	Strength float64
	Range    float64
}

// Boid holds per-entity flocking parameters.
type Boid struct {
	MinSpeed       float64
	MaxSpeed       float64
	Cohesion       float64
	Separation     float64
	Alignment      float64
	FOV            float64 // Full cone angle in radians
	ProtectedRange float64
	ViewRange      float64
	MaxTurnRate    float64 // Radians per second, 0 = unlimited
	Jitter         float64
	GoalWeight     float64
	Goal           r2.Vec
	HasGoal        bool
}

// BirdMode is the curiosity state of a bird.
type BirdMode uint8

const (
	BirdNeutral BirdMode = iota
	BirdIncurious
	BirdCurious
	BirdLosingCuriosity
)

// BirdBehavior drives a bird's curiosity towards the player.
// The component is removed when a bird finishes losing curiosity.
type BirdBehavior struct {
	Mode   BirdMode
	Until  float64 // Simulation seconds the curious mode ends at
	Scale  float64 // Visual scale accumulator, 1 = full size
	Offset r2.Vec  // Point relative to the player the bird circles
}

// WhaleMode is the behaviour state of an adult whale.
type WhaleMode uint8

const (
	WhaleTravelling WhaleMode = iota
	WhaleCurious
)

// WhaleBehavior drives an adult whale's curiosity towards the player.
type WhaleBehavior struct {
	Mode  WhaleMode
	Until float64 // +Inf once curious
}

package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/migration/components"
)

// Event is something the simulation reports to presentation, audio and telemetry.
type Event interface {
	// Kind returns a short snake_case name used in logs and telemetry.
	Kind() string
}

// SpawnRequest asks for one creature of a species to be spawned.
type SpawnRequest struct {
	Species components.Species
}

// FlipOccurred reports a direction change.
type FlipOccurred struct {
	Message   string
	FlipCount uint32
	Direction Direction
}

// RainStateChanged reports that precipitation started or stopped.
type RainStateChanged struct {
	IsRaining bool
	Snow      bool
}

// CreatureArrivedAtTarget reports that a target-seeking movement completed.
// The entity may already have been removed when RemoveOnArrival was set.
type CreatureArrivedAtTarget struct {
	Entity  ecs.Entity
	Species components.Species
}

// CuriosityChanged reports a creature becoming curious or losing interest.
type CuriosityChanged struct {
	Entity  ecs.Entity
	Species components.Species
	Curious bool
}

// BabyWhaleDeparted reports a baby whale leaving the player.
type BabyWhaleDeparted struct {
	Entity ecs.Entity
}

func (SpawnRequest) Kind() string            { return "spawn_request" }
func (FlipOccurred) Kind() string            { return "flip" }
func (RainStateChanged) Kind() string        { return "rain_state_changed" }
func (CreatureArrivedAtTarget) Kind() string { return "arrived_at_target" }
func (CuriosityChanged) Kind() string        { return "curiosity_changed" }
func (BabyWhaleDeparted) Kind() string       { return "baby_whale_departed" }

// Events is a per-tick event queue.
type Events struct {
	items []Event
}

// Emit queues an event.
func (q *Events) Emit(e Event) {
	q.items = append(q.items, e)
}

// Pending returns queued events without removing them.
func (q *Events) Pending() []Event {
	return q.items
}

// Drain returns all queued events and empties the queue.
func (q *Events) Drain() []Event {
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *Events) Len() int {
	return len(q.items)
}

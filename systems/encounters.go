package systems

import (
	"math"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
)

// SpawnRateModel computes the distance until the next spawn of a species.
type SpawnRateModel struct {
	Slope     float64    // Percent of the current distance added to each step
	Intercept [2]float64 // Uniform base step range
	Cutoff    float64    // Suppress spawns from this leg distance on (0 = never)
}

// Step returns the distance to the next spawn from now, clamped to
// [minStep, maxStep]. NaN and infinite raw steps are replaced by the nearer bound.
func (m SpawnRateModel) Step(now, minStep, maxStep float64, rng Random) float64 {
	raw := now*m.Slope/100 + rng.Range(m.Intercept[0], m.Intercept[1])
	switch {
	case math.IsNaN(raw):
		return minStep
	case raw < minStep:
		return minStep
	case raw > maxStep:
		return maxStep
	}
	return raw
}

// StepRecord is one recomputed spawn step, kept for telemetry.
type StepRecord struct {
	Species components.Species
	Step    float64
}

type speciesSchedule struct {
	species components.Species
	initial [2]float64
	minStep float64
	maxStep float64
	models  [2]SpawnRateModel
	next    float64 // +Inf when suppressed for the rest of the leg
}

// scheduledSpecies is the stable priority order of periodic spawns.
var scheduledSpecies = [...]components.Species{
	components.SpeciesBird,
	components.SpeciesFish,
	components.SpeciesShip,
	components.SpeciesIceberg,
}

// EncounterScheduler decides which species spawn as distance accumulates.
type EncounterScheduler struct {
	schedules [len(scheduledSpecies)]speciesSchedule
	adult     config.AdultWhaleEncounterConfig
	adultAt   float64
	adultSet  bool
	direction Direction
	rng       Random
	steps     []StepRecord
}

// NewEncounterScheduler creates a scheduler ready for the first (southward) leg.
func NewEncounterScheduler(cfg config.EncountersConfig, rng Random) *EncounterScheduler {
	s := &EncounterScheduler{adult: cfg.AdultWhale, rng: rng}
	perSpecies := [...]config.SpeciesEncounterConfig{cfg.Bird, cfg.Fish, cfg.Ship, cfg.Iceberg}
	for i, sp := range scheduledSpecies {
		c := perSpecies[i]
		s.schedules[i] = speciesSchedule{
			species: sp,
			initial: c.Initial,
			minStep: c.MinStep,
			maxStep: c.MaxStep,
			models: [2]SpawnRateModel{
				South: {Slope: c.South.Slope, Intercept: c.South.Intercept, Cutoff: c.South.Cutoff},
				North: {Slope: c.North.Slope, Intercept: c.North.Intercept, Cutoff: c.North.Cutoff},
			},
		}
	}
	s.ResetForLeg(South, 0)
	return s
}

// Tick returns the species due at distance now, in priority order bird, fish,
// ship, iceberg, adult whale, and schedules their next spawn.
func (s *EncounterScheduler) Tick(now float64) []components.Species {
	var due []components.Species
	for i := range s.schedules {
		sch := &s.schedules[i]
		if sch.next > now {
			continue
		}
		due = append(due, sch.species)
		s.reschedule(sch, now)
	}
	if s.adultSet && s.adultAt <= now {
		due = append(due, components.SpeciesAdultWhale)
		s.adultSet = false
	}
	return due
}

func (s *EncounterScheduler) reschedule(sch *speciesSchedule, now float64) {
	model := sch.models[s.direction]
	step := model.Step(now, sch.minStep, sch.maxStep, s.rng)
	sch.next = now + step
	s.steps = append(s.steps, StepRecord{Species: sch.species, Step: step})
	if model.Cutoff > 0 && sch.next >= model.Cutoff {
		sch.next = math.Inf(1)
	}
}

// ScheduleAdultWhale plans a single adult whale at the given leg distance,
// replacing any earlier plan.
func (s *EncounterScheduler) ScheduleAdultWhale(at float64) {
	s.adultAt = at
	s.adultSet = true
}

// ResetForLeg restores the initial timers for a new leg. On the first leg an
// adult whale is planned at the configured distance; on legs heading north
// one is planned on the first such leg and by chance afterwards.
func (s *EncounterScheduler) ResetForLeg(dir Direction, flipCount uint32) {
	s.direction = dir
	for i := range s.schedules {
		sch := &s.schedules[i]
		sch.next = sch.initial[dir]
		if c := sch.models[dir].Cutoff; c > 0 && sch.next >= c {
			sch.next = math.Inf(1)
		}
	}
	s.adultSet = false
	switch {
	case flipCount == 0:
		s.ScheduleAdultWhale(s.adult.Initial)
	case dir == North && (flipCount == 1 || s.rng.Chance(s.adult.FlipChance)):
		s.ScheduleAdultWhale(s.rng.Range(s.adult.FlipMin, s.adult.FlipMax))
	}
}

// Next returns the next spawn distance for a periodic species and whether the
// species is scheduled at all. Adult whales report the one-shot plan.
func (s *EncounterScheduler) Next(sp components.Species) (float64, bool) {
	if sp == components.SpeciesAdultWhale {
		return s.adultAt, s.adultSet
	}
	for i := range s.schedules {
		if s.schedules[i].species == sp {
			return s.schedules[i].next, true
		}
	}
	return 0, false
}

// Direction returns the direction the scheduler is configured for.
func (s *EncounterScheduler) Direction() Direction {
	return s.direction
}

// DrainSteps returns the steps recomputed since the last call.
func (s *EncounterScheduler) DrainSteps() []StepRecord {
	out := s.steps
	s.steps = nil
	return out
}

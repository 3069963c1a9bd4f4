package systems

// SystemInfo describes a simulation phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "behavior", "environment")
}

// SystemRegistry holds metadata about the simulation phases in tick order.
// This keeps phase naming in one place so the UI and perf tracker agree.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all phases in the order they run each tick.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "player", Name: "Player", Description: "Applies movement intent to the player whale", Category: "core"})
	r.Register(SystemInfo{ID: "travel", Name: "Travel", Description: "Advances the travel clock", Category: "core"})
	r.Register(SystemInfo{ID: "flip", Name: "Flip", Description: "Applies direction flip resets", Category: "core"})
	r.Register(SystemInfo{ID: "encounters", Name: "Encounters", Description: "Schedules and spawns creatures", Category: "core"})
	r.Register(SystemInfo{ID: "weather", Name: "Weather", Description: "Updates day/night, rain, snow and waves", Category: "environment"})
	r.Register(SystemInfo{ID: "behavior", Name: "Behavior", Description: "Runs bird and whale state machines", Category: "behavior"})
	r.Register(SystemInfo{ID: "flocking", Name: "Flocking", Description: "Steers fish schools", Category: "behavior"})
	r.Register(SystemInfo{ID: "movement", Name: "Movement", Description: "Moves targets and constant-velocity creatures", Category: "core"})
	r.Register(SystemInfo{ID: "cleanup", Name: "Cleanup", Description: "Removes despawned creatures", Category: "core"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Records window statistics", Category: "internal"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}

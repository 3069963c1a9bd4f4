package components

// String returns the display name for a Species.
func (s Species) String() string {
	names := SpeciesNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// SpeciesNames returns the display names for all species.
// The order matches the Species constants.
func SpeciesNames() []string {
	return []string{"bird", "fish", "ship", "iceberg", "adult_whale", "baby_whale", "player"}
}

// SpeciesCount returns the number of species.
func SpeciesCount() int {
	return len(SpeciesNames())
}

// String returns the display name for a BirdMode.
func (m BirdMode) String() string {
	switch m {
	case BirdNeutral:
		return "Neutral"
	case BirdIncurious:
		return "Incurious"
	case BirdCurious:
		return "Curious"
	case BirdLosingCuriosity:
		return "LosingCuriosity"
	}
	return "Unknown"
}

// String returns the display name for a WhaleMode.
func (m WhaleMode) String() string {
	switch m {
	case WhaleTravelling:
		return "Travelling"
	case WhaleCurious:
		return "Curious"
	}
	return "Unknown"
}

package ratscrew

import "ratscrew/internal/rng"

// Options are options for creating a new game
type Options struct {
	// Seed makes the shuffle deterministic when > 0
	Seed int64
	// Generator overrides the shuffle source (Seed is ignored when set)
	Generator rng.Generator
}

// DefaultOptions returns the default options for a game
func DefaultOptions() Options {
	return Options{}
}

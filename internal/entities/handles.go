// Package entities provides core data structures for the dungeon orchestrator.
package entities

// ArenaHandle identifies an isolated arena allocated by the host engine.
// Opaque to the core; exactly one live session owns a handle at a time.
type ArenaHandle string

// ActorHandle identifies a spawned actor inside the host engine
type ActorHandle string

// Location is an opaque position handle inside an arena. Coordinates are
// passed through to the host engine untouched.
type Location struct {
	Arena ArenaHandle `json:"arena,omitempty" yaml:"-"`
	X     float64     `json:"x" yaml:"x"`
	Y     float64     `json:"y" yaml:"y"`
	Z     float64     `json:"z" yaml:"z"`
}

// InArena returns a copy of the location bound to the given arena
func (l Location) InArena(arena ArenaHandle) Location {
	l.Arena = arena
	return l
}

package requirements

import (
	"github.com/hypedmc/dungeon-api/internal/entities"
)

// Evaluate checks every requirement against the profile in the order
// given. All failures are collected rather than short-circuiting so the
// caller can report every unmet condition at once. Pure: neither the
// profile nor the requirements are mutated.
func Evaluate(profile *entities.ParticipantProfile, reqs []Requirement) (bool, []Requirement) {
	var failed []Requirement
	for _, req := range reqs {
		if !req.Check(profile) {
			failed = append(failed, req)
		}
	}
	return len(failed) == 0, failed
}

// Describe renders the requirements as human-readable strings, order
// preserved.
func Describe(reqs []Requirement) []string {
	out := make([]string, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, req.Description())
	}
	return out
}

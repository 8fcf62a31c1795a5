// Package suggest finds likely intended names for misspelled ones.
package suggest

import (
	"slices"

	"github.com/agnivade/levenshtein"
)

// maxDistance is the largest edit distance still worth suggesting
const maxDistance = 3

// Closest returns the candidates nearest to name, sorted. Candidates further
// than a few edits away, or further than half the name's length, are ignored.
func Closest(name string, candidates []string) []string {
	limit := min(maxDistance, max(1, len(name)/2)) + 1

	var closest []string

	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(name, c)

		switch {
		case dist < limit:
			closest = []string{c}
			limit = dist
		case dist == limit:
			closest = append(closest, c)
		}
	}

	slices.Sort(closest)

	return closest
}

// Hint formats the closest candidates as a "did you mean" suffix, or returns
// an empty string when nothing is close.
func Hint(name string, candidates []string) string {
	closest := Closest(name, candidates)
	switch len(closest) {
	case 0:
		return ""
	case 1:
		return " (did you mean '" + closest[0] + "'?)"
	default:
		hint := " (did you mean one of"
		for _, c := range closest {
			hint += " '" + c + "'"
		}

		return hint + "?)"
	}
}

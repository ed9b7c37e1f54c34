package main

import "github.com/agnivade/levenshtein"

var commands = []string{"generate", "runs", "version", "help"}

// suggest returns the closest known subcommand to input, or "" when nothing
// is within a sensible edit distance.
func suggest(input string) string {
	best := ""
	bestDist := -1

	for _, cmd := range commands {
		dist := levenshtein.ComputeDistance(input, cmd)
		if dist > suggestLimit(len(cmd)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best, bestDist = cmd, dist
		}
	}

	return best
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

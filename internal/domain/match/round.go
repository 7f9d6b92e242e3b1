package match

// CurrentRound returns the round to treat as active for betting: the smallest
// round with at least one unfinished match. When the whole season is finished
// it falls back to the largest round present. Returns 0 for an empty set.
func CurrentRound(matches []Match) int {
	smallestOpen := 0
	largest := 0
	for _, m := range matches {
		if m.Round <= 0 {
			continue
		}
		if m.Round > largest {
			largest = m.Round
		}
		if m.Finished() {
			continue
		}
		if smallestOpen == 0 || m.Round < smallestOpen {
			smallestOpen = m.Round
		}
	}
	if smallestOpen > 0 {
		return smallestOpen
	}
	return largest
}

// ByRound filters matches to a single round, preserving input order.
func ByRound(matches []Match, round int) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

// IsRoundComplete reports whether every match in the set is finished. An empty
// set is not complete: a round we know nothing about cannot be settled.
func IsRoundComplete(matches []Match) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if !m.Finished() {
			return false
		}
	}
	return true
}

package session

import (
	"strconv"
	"strings"
)

// Match compares a given answer against the item's expected answers.
// Typed answers match case-insensitively after trimming. Choice answers
// match by option text or by 1-based option number. An item without a
// usable expected answer never matches.
//
// accepted is the canonical expected answer, or "" when there is none.
func Match(it Item, given string) (correct bool, accepted string) {
	accepted = it.Canonical()
	given = strings.TrimSpace(given)
	if given == "" || strings.TrimSpace(accepted) == "" {
		return false, accepted
	}

	if it.Kind.IsChoice() {
		if idx, err := strconv.Atoi(given); err == nil && idx >= 1 && idx <= len(it.Options) {
			given = strings.TrimSpace(it.Options[idx-1])
		}
	}

	for _, want := range it.ExpectedAnswers {
		want = strings.TrimSpace(want)
		if want != "" && strings.EqualFold(given, want) {
			return true, accepted
		}
	}
	return false, accepted
}

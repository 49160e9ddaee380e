package session

import (
	"errors"
	"strings"

	"github.com/abhisek/lexiz/internal/prng"
	"github.com/abhisek/lexiz/internal/vocab"
)

// RoomQuestions is the fixed length of a room session.
const RoomQuestions = 10

// ErrInvalidRoomCode is returned for room codes that are not numeric.
var ErrInvalidRoomCode = errors.New("room code must be numeric")

// Question is one planned slot of a mixed session.
type Question struct {
	Kind   Kind
	WordID string
}

// Partition splits n questions across MixedKinds as evenly as possible.
// The remainder goes to the first kinds in enumeration order.
func Partition(n int) []int {
	counts := make([]int, len(MixedKinds))
	if n <= 0 {
		return counts
	}
	base, rem := n/len(MixedKinds), n%len(MixedKinds)
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}

// PlanMixed distributes n questions across the kinds and picks a word for
// each. A pick is retried while its word was already used in this plan,
// up to twice the vocabulary size, so repeats only occur once the
// vocabulary is exhausted. The plan is shuffled so kinds interleave.
func PlanMixed(words []vocab.Item, n int, src prng.Source) []Question {
	if len(words) == 0 || n <= 0 {
		return nil
	}

	used := make(map[string]bool)
	maxAttempts := 2 * len(words)
	plan := make([]Question, 0, n)

	for k, count := range Partition(n) {
		for range count {
			idx := src.IntN(len(words))
			for attempts := 0; used[words[idx].ID] && attempts < maxAttempts; attempts++ {
				idx = src.IntN(len(words))
			}
			used[words[idx].ID] = true
			plan = append(plan, Question{Kind: MixedKinds[k], WordID: words[idx].ID})
		}
	}

	return prng.Shuffle(src, plan)
}

// BuildMixed plans a mixed session and materializes its items, including
// choice options drawn from src.
func BuildMixed(words []vocab.Item, n int, src prng.Source) []Item {
	plan := PlanMixed(words, n, src)
	index := vocab.Index(words)
	items := make([]Item, 0, len(plan))
	for _, q := range plan {
		items = append(items, NewItem(index[q.WordID], q.Kind))
	}
	return WithOptions(items, words, src)
}

// BuildRoom builds the RoomQuestions-long mixed session for a numeric
// room code. Every client using the same code and vocabulary gets the
// same questions and options.
func BuildRoom(words []vocab.Item, code string) ([]Item, error) {
	code = strings.TrimSpace(code)
	if !ValidRoomCode(code) {
		return nil, ErrInvalidRoomCode
	}
	return BuildMixed(words, RoomQuestions, prng.New(code)), nil
}

// ValidRoomCode reports whether code is a non-empty string of digits.
func ValidRoomCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RetryErrors builds a follow-up mixed session from the distinct words
// missed in misses, each presented as a randomly chosen kind.
func RetryErrors(misses []AnswerRecord, words []vocab.Item, src prng.Source) []Item {
	index := vocab.Index(words)
	seen := make(map[string]bool)
	var items []Item
	for _, m := range misses {
		if seen[m.WordID] {
			continue
		}
		seen[m.WordID] = true
		w, ok := index[m.WordID]
		if !ok {
			continue
		}
		items = append(items, NewItem(w, prng.Choice(src, MixedKinds)))
	}
	return WithOptions(items, words, src)
}

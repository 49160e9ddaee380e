package session

import (
	"strings"

	"github.com/abhisek/lexiz/internal/prng"
	"github.com/abhisek/lexiz/internal/vocab"
)

// OptionCount is the number of choices offered for choice kinds.
const OptionCount = 4

// Options returns the shuffled choices for a choice item: the correct
// answer plus up to OptionCount-1 distractors. Related forms of the word
// are preferred as distractors before other vocabulary entries. Typed
// kinds have no options.
func Options(it Item, words []vocab.Item, src prng.Source) []string {
	if !it.Kind.IsChoice() {
		return nil
	}
	correct := it.Canonical()
	if correct == "" {
		return nil
	}

	seen := map[string]bool{strings.ToLower(correct): true}
	choices := []string{correct}
	add := func(candidates []string) {
		for _, c := range prng.Shuffle(src, candidates) {
			if len(choices) >= OptionCount {
				return
			}
			key := strings.ToLower(strings.TrimSpace(c))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			choices = append(choices, c)
		}
	}

	related, others := distractorPools(it, words)
	add(related)
	add(others)

	return prng.Shuffle(src, choices)
}

// distractorPools splits candidate distractors into those suggested by the
// word's related forms and the rest of the vocabulary.
func distractorPools(it Item, words []vocab.Item) (related, others []string) {
	relatedSet := make(map[string]bool, len(it.Word.RelatedForms))
	for _, r := range it.Word.RelatedForms {
		relatedSet[strings.ToLower(r)] = true
	}

	if it.Kind == KindRecall {
		related = append(related, it.Word.RelatedForms...)
	}

	for _, w := range words {
		if w.ID == it.WordID {
			continue
		}
		candidate := w.Term()
		if it.Kind == KindRecognize {
			candidate = w.Prompt
		}
		if it.Kind == KindRecognize && relatedSet[strings.ToLower(w.Term())] {
			related = append(related, candidate)
			continue
		}
		others = append(others, candidate)
	}
	return related, others
}

// WithOptions fills Options for every choice item in place and returns
// items.
func WithOptions(items []Item, words []vocab.Item, src prng.Source) []Item {
	for i := range items {
		items[i].Options = Options(items[i], words, src)
	}
	return items
}

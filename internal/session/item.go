// Package session builds study sessions and runs the state machine that
// walks through them: answer matching, requeueing of missed words,
// navigation and summaries.
package session

import (
	"slices"
	"strings"

	"github.com/abhisek/lexiz/internal/vocab"
)

// Kind is the question kind of a session item.
type Kind string

const (
	// KindSpell shows the meaning and expects the term typed in.
	KindSpell Kind = "spell"

	// KindRecognize shows the term and offers meanings to choose from.
	KindRecognize Kind = "recognize"

	// KindRecall shows the meaning and offers terms to choose from.
	KindRecall Kind = "recall"
)

// MixedKinds is the fixed enumeration order used by mixed sessions.
var MixedKinds = []Kind{KindSpell, KindRecognize, KindRecall}

// ParseKind maps a kind name to a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, slices.Contains(MixedKinds, k)
}

// IsChoice reports whether the kind is answered by picking an option.
func (k Kind) IsChoice() bool {
	return k == KindRecognize || k == KindRecall
}

// Label is the human-readable name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindSpell:
		return "Spell it"
	case KindRecognize:
		return "Choose the meaning"
	case KindRecall:
		return "Choose the word"
	default:
		return string(k)
	}
}

// Item is one entry of a session's working list.
type Item struct {
	WordID          string
	DisplayPrompt   string
	ExpectedAnswers []string
	Kind            Kind

	// IsRequeued marks an occurrence reinserted after a miss.
	IsRequeued bool

	// Options holds the shuffled choices for choice kinds.
	Options []string

	Word vocab.Item

	answered bool
}

// NewItem builds the item presenting word as the given kind.
func NewItem(word vocab.Item, kind Kind) Item {
	it := Item{
		WordID: word.ID,
		Kind:   kind,
		Word:   word,
	}
	switch kind {
	case KindRecognize:
		it.DisplayPrompt = word.Term()
		it.ExpectedAnswers = meaningAnswers(word)
	default:
		it.DisplayPrompt = word.Prompt
		it.ExpectedAnswers = slices.Clone(word.AnswerForms)
	}
	return it
}

func meaningAnswers(word vocab.Item) []string {
	var out []string
	if p := strings.TrimSpace(word.Prompt); p != "" {
		out = append(out, p)
	}
	for _, m := range word.Meanings {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

// Answered reports whether this occurrence has been answered.
func (it Item) Answered() bool {
	return it.answered
}

// Canonical returns the display form of the expected answer.
func (it Item) Canonical() string {
	if len(it.ExpectedAnswers) == 0 {
		return ""
	}
	return it.ExpectedAnswers[0]
}

// requeued returns a fresh copy of the item marked as reinserted.
func (it Item) requeued() Item {
	out := it
	out.IsRequeued = true
	out.answered = false
	out.Options = slices.Clone(it.Options)
	return out
}

// ItemsFor presents every word as the same kind, in order.
func ItemsFor(words []vocab.Item, kind Kind) []Item {
	items := make([]Item, len(words))
	for i, w := range words {
		items[i] = NewItem(w, kind)
	}
	return items
}

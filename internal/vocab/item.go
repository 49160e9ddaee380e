// Package vocab defines vocabulary entries and loads them from JSON and
// XLSX sources.
package vocab

import "strings"

// Item is one vocabulary entry. Items are read-only once loaded.
type Item struct {
	ID string

	// AnswerForms holds the accepted spellings of the term. The first
	// entry is the canonical display form.
	AnswerForms []string

	// Prompt is the display form of the meaning.
	Prompt string

	// Meanings is the acceptance set for the meaning, used when the
	// meaning itself is the expected answer.
	Meanings []string

	// RelatedForms are easily confused terms preferred as distractors.
	RelatedForms []string
}

// Term returns the canonical answer form, or "" if the item has none.
func (it Item) Term() string {
	if len(it.AnswerForms) == 0 {
		return ""
	}
	return it.AnswerForms[0]
}

// Usable reports whether the item has both a term and a prompt.
func (it Item) Usable() bool {
	return strings.TrimSpace(it.Term()) != "" && strings.TrimSpace(it.Prompt) != ""
}

// NewItem resolves the term and meaning variants into an Item.
func NewItem(id string, term, meaning Field, related []string) Item {
	_, forms := Resolve(term)
	_, meanings := Resolve(meaning)
	prompt := ""
	if meaning != nil {
		prompt = meaning.Display()
	}
	return Item{
		ID:           id,
		AnswerForms:  forms,
		Prompt:       prompt,
		Meanings:     meanings,
		RelatedForms: MultiForm(related).Forms(),
	}
}

// Index returns the items keyed by ID.
func Index(items []Item) map[string]Item {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

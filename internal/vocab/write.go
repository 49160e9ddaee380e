package vocab

import (
	"encoding/json"
	"fmt"
	"io"
)

type entryOut struct {
	ID      string   `json:"id"`
	English any      `json:"english"`
	Chinese string   `json:"chinese"`
	Related []string `json:"related,omitempty"`
}

// WriteJSON writes items in the array form LoadJSON reads. A term with
// alternate spellings is written as a list. Grouped meanings are written
// in their display form.
func WriteJSON(w io.Writer, items []Item) error {
	out := make([]entryOut, 0, len(items))
	for _, it := range items {
		var english any = it.Term()
		if len(it.AnswerForms) > 1 {
			english = it.AnswerForms
		}
		out = append(out, entryOut{
			ID:      it.ID,
			English: english,
			Chinese: it.Prompt,
			Related: it.RelatedForms,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	return nil
}

package errorbook

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/vocab"
)

// MergeResult reports what an import changed.
type MergeResult struct {
	// Words is the vocabulary with any new words appended.
	Words []vocab.Item

	// Updated counts words that already existed.
	Updated int

	// Added counts words appended to the vocabulary.
	Added int

	// Touched lists the ids whose stats changed, in merge order.
	Touched []string

	// NewIDs lists the ids given to appended words. Their stats only make
	// sense once Words is saved as the vocabulary.
	NewIDs []string
}

// Known returns the touched ids that were already in the vocabulary.
func (r MergeResult) Known() []string {
	var out []string
	for _, id := range r.Touched {
		if !slices.Contains(r.NewIDs, id) {
			out = append(out, id)
		}
	}
	return out
}

// Merge folds imported entries into words and store. Entries are matched
// by term and meaning, case-insensitively. A matched word re-enters the
// error set keeping the larger wrong count and the later wrong time. An
// unmatched entry becomes a new word with the next numeric id.
func Merge(words []vocab.Item, store stats.Store, entries []Entry) MergeResult {
	res := MergeResult{Words: append([]vocab.Item(nil), words...)}

	byKey := make(map[string]string, len(words))
	for _, w := range words {
		byKey[key(w.Term(), w.Prompt)] = w.ID
	}
	next := nextID(words)

	for _, e := range entries {
		k := key(e.English, e.Chinese)
		id, ok := byKey[k]
		if !ok {
			item := vocab.NewItem(strconv.Itoa(next), vocab.SimpleAnswer(e.English), vocab.SimpleAnswer(e.Chinese), nil)
			if !item.Usable() {
				continue
			}
			id = item.ID
			next++
			res.Words = append(res.Words, item)
			res.NewIDs = append(res.NewIDs, id)
			byKey[k] = id
			res.Added++
		} else {
			res.Updated++
		}

		ws, _ := store.Get(id)
		ws.IsInErrorSet = true
		ws.TimesWrong = max(ws.TimesWrong, e.TimesWrong)
		ws.TimesStudied = max(ws.TimesStudied, e.TimesStudied, ws.TimesWrong)
		ws.LastWrongAt = later(ws.LastWrongAt, e.LastWrongAt)
		ws.LastStudiedAt = later(ws.LastStudiedAt, e.LastStudiedAt)
		for kind, n := range e.WrongByKind {
			if ws.WrongByKind == nil {
				ws.WrongByKind = make(map[string]int)
			}
			ws.WrongByKind[kind] = max(ws.WrongByKind[kind], n)
		}
		store.Set(ws)
		res.Touched = append(res.Touched, id)
	}
	return res
}

func key(term, meaning string) string {
	return strings.ToLower(strings.TrimSpace(term)) + "\x00" + strings.ToLower(strings.TrimSpace(meaning))
}

func nextID(words []vocab.Item) int {
	n := 0
	for _, w := range words {
		if v, err := strconv.Atoi(w.ID); err == nil && v > n {
			n = v
		}
	}
	return n + 1
}

func later(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	}
	return a
}

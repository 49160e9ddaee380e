// Package stats holds the per-word study history that drives scheduling.
package stats

import (
	"maps"
	"slices"
	"time"
)

// WordStats is the mutable study record for one vocabulary item.
type WordStats struct {
	WordID        string
	TimesStudied  int
	TimesWrong    int
	LastStudiedAt *time.Time
	LastWrongAt   *time.Time

	// IsInErrorSet marks a word that is owed a correction pass.
	IsInErrorSet bool

	// WrongByKind counts misses per question kind.
	WrongByKind map[string]int
}

// Accuracy returns the fraction of correct answers, or 0 if never studied.
func (ws WordStats) Accuracy() float64 {
	if ws.TimesStudied == 0 {
		return 0
	}
	return float64(ws.TimesStudied-ws.TimesWrong) / float64(ws.TimesStudied)
}

// Studied reports whether the word has been answered at least once.
func (ws WordStats) Studied() bool {
	return ws.TimesStudied > 0
}

// Clone returns a deep copy.
func (ws WordStats) Clone() WordStats {
	out := ws
	if ws.LastStudiedAt != nil {
		t := *ws.LastStudiedAt
		out.LastStudiedAt = &t
	}
	if ws.LastWrongAt != nil {
		t := *ws.LastWrongAt
		out.LastWrongAt = &t
	}
	if ws.WrongByKind != nil {
		out.WrongByKind = maps.Clone(ws.WrongByKind)
	}
	return out
}

// RecordAnswer applies one answer to the record.
func (ws *WordStats) RecordAnswer(correct bool, kind string, now time.Time) {
	ws.TimesStudied++
	studied := now
	ws.LastStudiedAt = &studied
	if correct {
		return
	}
	ws.TimesWrong++
	wrong := now
	ws.LastWrongAt = &wrong
	ws.IsInErrorSet = true
	if kind != "" {
		if ws.WrongByKind == nil {
			ws.WrongByKind = make(map[string]int)
		}
		ws.WrongByKind[kind]++
	}
}

// Store is the get/set-by-id contract the scheduler and session use.
// Get returns the zero record (with WordID set) and false for unknown ids.
type Store interface {
	Get(wordID string) (WordStats, bool)
	Set(ws WordStats)
}

// Book is an in-memory Store. It is not safe for concurrent use.
type Book struct {
	records map[string]WordStats
}

var _ Store = (*Book)(nil)

// NewBook creates a Book seeded with the given records.
func NewBook(records ...WordStats) *Book {
	b := &Book{records: make(map[string]WordStats, len(records))}
	for _, r := range records {
		b.records[r.WordID] = r.Clone()
	}
	return b
}

func (b *Book) Get(wordID string) (WordStats, bool) {
	ws, ok := b.records[wordID]
	if !ok {
		return WordStats{WordID: wordID}, false
	}
	return ws.Clone(), true
}

func (b *Book) Set(ws WordStats) {
	b.records[ws.WordID] = ws.Clone()
}

// ClearError removes a word from the error set. It reports whether the
// word was in the set.
func (b *Book) ClearError(wordID string) bool {
	ws, ok := b.records[wordID]
	if !ok || !ws.IsInErrorSet {
		return false
	}
	ws.IsInErrorSet = false
	b.records[wordID] = ws
	return true
}

// All returns every record ordered by word id.
func (b *Book) All() []WordStats {
	ids := slices.Sorted(maps.Keys(b.records))
	out := make([]WordStats, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.records[id].Clone())
	}
	return out
}

// ErrorSet returns the ids of words currently in the error set, ordered
// by word id.
func (b *Book) ErrorSet() []string {
	var ids []string
	for _, ws := range b.All() {
		if ws.IsInErrorSet {
			ids = append(ids, ws.WordID)
		}
	}
	return ids
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.records)
}

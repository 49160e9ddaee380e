package session

import (
	"time"

	"github.com/abhisek/lexiz/internal/prng"
	"github.com/abhisek/lexiz/internal/scheduler"
	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/vocab"
)

// ScoreAndBuild orders words by priority-weighted sampling against store
// and presents each as kind.
func ScoreAndBuild(words []vocab.Item, store stats.Store, now time.Time, kind Kind, src prng.Source) []Item {
	ordered := scheduler.Build(words, store, now, src)
	return WithOptions(ItemsFor(ordered, kind), words, src)
}

// ErrorSetItems presents every word currently in the error set as kind,
// in vocabulary order.
func ErrorSetItems(words []vocab.Item, store stats.Store, kind Kind, src prng.Source) []Item {
	var picked []vocab.Item
	for _, w := range words {
		if ws, _ := store.Get(w.ID); ws.IsInErrorSet {
			picked = append(picked, w)
		}
	}
	return WithOptions(ItemsFor(picked, kind), words, src)
}

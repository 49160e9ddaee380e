package scheduler

import (
	"time"

	"github.com/abhisek/lexiz/internal/prng"
	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/vocab"
)

// ScoredWord pairs an item with its priority and selection probability.
type ScoredWord struct {
	Item        vocab.Item
	Priority    float64
	Probability float64
}

// ScoreWords computes priorities for items and normalizes them into
// probabilities. When every priority is zero each item gets 1/n.
// Missing stats are treated as a never-studied word.
func ScoreWords(items []vocab.Item, store stats.Store, now time.Time) []ScoredWord {
	scored := make([]ScoredWord, len(items))
	var total float64
	for i, it := range items {
		ws, _ := store.Get(it.ID)
		p := Priority(ws, now)
		scored[i] = ScoredWord{Item: it, Priority: p}
		total += p
	}

	for i := range scored {
		if total > 0 {
			scored[i].Probability = scored[i].Priority / total
		} else {
			scored[i].Probability = 1 / float64(len(scored))
		}
	}
	return scored
}

// Sample draws every scored word without replacement. Each draw walks the
// remaining words accumulating probability and takes the first whose
// cumulative mass reaches the random value, falling back to the first
// remaining word. The result is a permutation of the input.
func Sample(scored []ScoredWord, src prng.Source) []ScoredWord {
	pool := make([]ScoredWord, len(scored))
	copy(pool, scored)
	out := make([]ScoredWord, 0, len(scored))

	for len(pool) > 0 {
		idx := pick(pool, src.Float64())
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}

func pick(pool []ScoredWord, r float64) int {
	var cumulative float64
	for i, w := range pool {
		cumulative += w.Probability
		if r <= cumulative {
			return i
		}
	}
	return 0
}

// Build scores items against store and returns them in sampled order.
func Build(items []vocab.Item, store stats.Store, now time.Time, src prng.Source) []vocab.Item {
	sampled := Sample(ScoreWords(items, store, now), src)
	out := make([]vocab.Item, len(sampled))
	for i, sw := range sampled {
		out[i] = sw.Item
	}
	return out
}

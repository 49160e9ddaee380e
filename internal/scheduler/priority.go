// Package scheduler orders a vocabulary for study. Each word gets an
// additive priority from its history, and the session order is a
// priority-weighted shuffle of the whole vocabulary.
package scheduler

import (
	"math"
	"time"

	"github.com/abhisek/lexiz/internal/stats"
)

// ReviewCheckpoints are the hours after a study event at which a word
// earns the memory-curve bonus.
var ReviewCheckpoints = []float64{1, 6, 24, 48, 72}

const (
	neverStudiedBonus = 100.0
	errorWeight       = 20.0

	recentErrorMax   = 50.0
	recentErrorDecay = 5.0 // per day

	exposureMax   = 30.0
	exposureDecay = 3.0 // per study

	inaccuracyWeight  = 40.0
	proficiencyWeight = 0.5

	checkpointBonus  = 30.0
	checkpointWindow = 1.0 // hours, exclusive
)

// Breakdown holds each additive term of a word's priority.
type Breakdown struct {
	NeverStudied  float64
	Errors        float64
	RecentError   float64
	UnderExposure float64
	Inaccuracy    float64
	Proficiency   float64
	Checkpoint    float64
}

// Total sums the terms.
func (b Breakdown) Total() float64 {
	return b.NeverStudied + b.Errors + b.RecentError + b.UnderExposure +
		b.Inaccuracy + b.Proficiency + b.Checkpoint
}

// Explain computes every priority term for a word at time now.
func Explain(ws stats.WordStats, now time.Time) Breakdown {
	var b Breakdown

	if ws.TimesStudied == 0 {
		b.NeverStudied = neverStudiedBonus
	}

	b.Errors = errorWeight * float64(ws.TimesWrong)

	if ws.LastWrongAt != nil {
		days := elapsed(*ws.LastWrongAt, now).Hours() / 24
		b.RecentError = math.Max(0, recentErrorMax-recentErrorDecay*days)
	}

	b.UnderExposure = math.Max(0, exposureMax-exposureDecay*float64(ws.TimesStudied))

	if ws.TimesStudied > 0 {
		b.Inaccuracy = (1 - ws.Accuracy()) * inaccuracyWeight
	}

	b.Proficiency = (100 - float64(Proficiency(ws))) * proficiencyWeight

	if ws.LastStudiedAt != nil {
		hours := elapsed(*ws.LastStudiedAt, now).Hours()
		if _, ok := nearCheckpoint(hours); ok {
			b.Checkpoint = checkpointBonus
		}
	}

	return b
}

// Priority returns the unnormalized scheduling urgency of a word.
// It is never negative.
func Priority(ws stats.WordStats, now time.Time) float64 {
	return Explain(ws, now).Total()
}

// Proficiency is the rounded accuracy percentage, capped at 100, or 0 for
// a word never studied.
func Proficiency(ws stats.WordStats) int {
	if ws.TimesStudied == 0 {
		return 0
	}
	return int(math.Min(100, math.Round(100*ws.Accuracy())))
}

// nearCheckpoint returns the first checkpoint within the window of hours.
func nearCheckpoint(hours float64) (float64, bool) {
	for _, cp := range ReviewCheckpoints {
		if math.Abs(hours-cp) < checkpointWindow {
			return cp, true
		}
	}
	return 0, false
}

// elapsed returns now - t, clamped at zero for timestamps in the future.
func elapsed(t, now time.Time) time.Duration {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return d
}

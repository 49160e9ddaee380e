package session

import (
	"math"
	"time"
)

// Summary holds the results displayed at the end of a session.
type Summary struct {
	Mode      Mode
	Questions int
	Correct   int
	Incorrect int

	// Score is the rounded percentage of correct answers.
	Score int

	Accuracy float64
	Duration time.Duration

	// KindCounts is the number of items per kind, requeued ones included.
	KindCounts map[Kind]int

	// ErrorsByKind is the number of misses per kind.
	ErrorsByKind map[Kind]int

	Misses []AnswerRecord
}

// Summarize builds a Summary from the session state at time now.
func Summarize(s *State, now time.Time) Summary {
	sum := Summary{
		Mode:         s.Mode,
		Questions:    len(s.Items),
		Correct:      s.CorrectCount,
		Incorrect:    s.IncorrectCount,
		Duration:     now.Sub(s.StartedAt),
		KindCounts:   make(map[Kind]int),
		ErrorsByKind: make(map[Kind]int),
		Misses:       append([]AnswerRecord(nil), s.Misses...),
	}

	for _, it := range s.Items {
		sum.KindCounts[it.Kind]++
	}
	for _, m := range s.Misses {
		sum.ErrorsByKind[m.Kind]++
	}

	if answered := s.CorrectCount + s.IncorrectCount; answered > 0 {
		sum.Accuracy = float64(s.CorrectCount) / float64(answered)
		sum.Score = int(math.Round(100 * sum.Accuracy))
	}
	if sum.Duration < 0 {
		sum.Duration = 0
	}
	return sum
}

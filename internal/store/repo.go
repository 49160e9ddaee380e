package store

import (
	"context"
	"time"

	"github.com/abhisek/lexiz/internal/stats"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// StatsRepo persists per-word study history.
type StatsRepo interface {
	// LoadAll returns every stored record ordered by word id.
	LoadAll(ctx context.Context) ([]stats.WordStats, error)

	// Save upserts one record.
	Save(ctx context.Context, ws stats.WordStats) error

	// SaveAll upserts records in a single transaction.
	SaveAll(ctx context.Context, records []stats.WordStats) error

	// ClearError takes a word out of the error set. It reports whether the
	// word was in the set.
	ClearError(ctx context.Context, wordID string) (bool, error)

	// Reset deletes all study history.
	Reset(ctx context.Context) error
}

// SessionEventData captures a session start or end marker.
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	Mode            string
	Room            string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	SessionID      string
	WordID         string
	Kind           string
	Prompt         string
	GivenAnswer    string
	AcceptedAnswer string
	Correct        bool
	Forgot         bool
}

// SessionSummaryRecord is a finished session as listed in history.
type SessionSummaryRecord struct {
	Sequence        int64
	SessionID       string
	Timestamp       time.Time
	Mode            string
	Room            string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// EventRepo provides append access to session and answer events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// WordAccuracy returns the fraction of correct answers recorded for a
	// word and the number of answers it is based on.
	WordAccuracy(ctx context.Context, wordID string) (float64, int, error)
}

package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableWordStats     = "word_stats"
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
)

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// tables holds the DDL for every table the store uses. Event tables
// share the global sequence as their primary key. Timestamps are TEXT in a
// fixed-width UTC layout so they compare lexically.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS word_stats (
		word_id TEXT NOT NULL PRIMARY KEY,
		times_studied INTEGER NOT NULL DEFAULT 0,
		times_wrong INTEGER NOT NULL DEFAULT 0,
		last_studied_at TEXT,
		last_wrong_at TEXT,
		in_error_set INTEGER NOT NULL DEFAULT 0,
		wrong_by_kind TEXT,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		sequence INTEGER NOT NULL PRIMARY KEY,
		timestamp TEXT NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		mode TEXT NOT NULL,
		room TEXT,
		questions_served INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_action ON session_events (action)`,
	`CREATE INDEX IF NOT EXISTS session_events_timestamp ON session_events (timestamp)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		sequence INTEGER NOT NULL PRIMARY KEY,
		timestamp TEXT NOT NULL,
		session_id TEXT NOT NULL,
		word_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		prompt TEXT,
		given_answer TEXT,
		accepted_answer TEXT,
		correct INTEGER NOT NULL,
		forgot INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_word_id ON answer_events (word_id)`,
}

// migrate creates missing tables. Written as raw SQL because ent's
// builders only cover DML; the entity definitions live in ent/schema.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, ddl := range tables {
		if err := drv.Exec(ctx, ddl, []any{}, nil); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

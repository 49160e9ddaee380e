package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var room any
	if data.Room != "" {
		room = data.Room
	}

	query, args := sqlite().Insert(tableSessionEvents).
		Columns("sequence", "timestamp", "session_id", "action", "mode", "room",
			"questions_served", "correct_answers", "duration_secs").
		Values(seqNum, formatTime(time.Now()), data.SessionID, data.Action, data.Mode, room,
			data.QuestionsServed, data.CorrectAnswers, data.DurationSecs).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(tableAnswerEvents).
		Columns("sequence", "timestamp", "session_id", "word_id", "kind", "prompt",
			"given_answer", "accepted_answer", "correct", "forgot").
		Values(seqNum, formatTime(time.Now()), data.SessionID, data.WordID, data.Kind, data.Prompt,
			data.GivenAnswer, data.AcceptedAnswer, boolInt(data.Correct), boolInt(data.Forgot)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("action", "end")}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", formatTime(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", formatTime(opts.To)))
	}

	sel := sqlite().Select("sequence", "timestamp", "session_id", "mode", "room",
		"questions_served", "correct_answers", "duration_secs").
		From(sqlite().Table(tableSessionEvents)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec  SessionSummaryRecord
			ts   string
			room *string
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Mode, &room,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		if t, err := time.Parse(timeLayout, ts); err == nil {
			rec.Timestamp = t
		}
		if room != nil {
			rec.Room = *room
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) WordAccuracy(ctx context.Context, wordID string) (float64, int, error) {
	query, args := sqlite().Select("correct").
		From(sqlite().Table(tableAnswerEvents)).
		Where(entsql.EQ("word_id", wordID)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, 0, fmt.Errorf("query word accuracy: %w", err)
	}
	defer rows.Close()

	var total, correct int
	for rows.Next() {
		var c int
		if err := rows.Scan(&c); err != nil {
			return 0, 0, fmt.Errorf("scan word accuracy: %w", err)
		}
		total++
		if c != 0 {
			correct++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("iterate word accuracy: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

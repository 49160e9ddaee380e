package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lexiz/internal/stats"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var statsColumns = []string{
	"word_id", "times_studied", "times_wrong", "last_studied_at",
	"last_wrong_at", "in_error_set", "wrong_by_kind", "updated_at",
}

type statsRepo struct {
	drv *entsql.Driver
}

func (r *statsRepo) LoadAll(ctx context.Context) ([]stats.WordStats, error) {
	query, args := sqlite().Select(statsColumns...).
		From(sqlite().Table(tableWordStats)).
		OrderBy("word_id").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query word stats: %w", err)
	}
	defer rows.Close()

	var out []stats.WordStats
	for rows.Next() {
		var (
			ws                 stats.WordStats
			studiedAt, wrongAt sql.NullString
			inErrorSet         int
			wrongByKind        sql.NullString
			updatedAt          string
		)
		if err := rows.Scan(&ws.WordID, &ws.TimesStudied, &ws.TimesWrong,
			&studiedAt, &wrongAt, &inErrorSet, &wrongByKind, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan word stats: %w", err)
		}
		ws.LastStudiedAt = parseTime(studiedAt)
		ws.LastWrongAt = parseTime(wrongAt)
		ws.IsInErrorSet = inErrorSet != 0
		if wrongByKind.Valid && wrongByKind.String != "" {
			if err := json.Unmarshal([]byte(wrongByKind.String), &ws.WrongByKind); err != nil {
				return nil, fmt.Errorf("decode wrong_by_kind for %s: %w", ws.WordID, err)
			}
		}
		out = append(out, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate word stats: %w", err)
	}
	return out, nil
}

func (r *statsRepo) Save(ctx context.Context, ws stats.WordStats) error {
	query, args, err := upsertStats(ws)
	if err != nil {
		return err
	}
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save word stats: %w", err)
	}
	return nil
}

func (r *statsRepo) SaveAll(ctx context.Context, records []stats.WordStats) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, ws := range records {
		query, args, err := upsertStats(ws)
		if err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("save word stats %s: %w", ws.WordID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit word stats: %w", err)
	}
	return nil
}

func (r *statsRepo) ClearError(ctx context.Context, wordID string) (bool, error) {
	query, args := sqlite().Update(tableWordStats).
		Set("in_error_set", 0).
		Set("updated_at", formatTime(time.Now())).
		Where(entsql.And(
			entsql.EQ("word_id", wordID),
			entsql.EQ("in_error_set", 1),
		)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return false, fmt.Errorf("clear error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("clear error: %w", err)
	}
	return n > 0, nil
}

func (r *statsRepo) Reset(ctx context.Context) error {
	query, args := sqlite().Delete(tableWordStats).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("reset word stats: %w", err)
	}
	return nil
}

func upsertStats(ws stats.WordStats) (string, []any, error) {
	var wrongByKind any
	if len(ws.WrongByKind) > 0 {
		b, err := json.Marshal(ws.WrongByKind)
		if err != nil {
			return "", nil, fmt.Errorf("encode wrong_by_kind: %w", err)
		}
		wrongByKind = string(b)
	}

	inErrorSet := 0
	if ws.IsInErrorSet {
		inErrorSet = 1
	}

	query, args := sqlite().Insert(tableWordStats).
		Columns(statsColumns...).
		Values(ws.WordID, ws.TimesStudied, ws.TimesWrong,
			nullTime(ws.LastStudiedAt), nullTime(ws.LastWrongAt),
			inErrorSet, wrongByKind, formatTime(time.Now())).
		OnConflict(
			entsql.ConflictColumns("word_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	return query, args, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

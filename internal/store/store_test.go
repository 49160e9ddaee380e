package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/lexiz/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.StatsRepo().Save(ctx, stats.WordStats{WordID: "1", TimesStudied: 2}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	all, err := s.StatsRepo().LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 1 || all[0].TimesStudied != 2 {
		t.Errorf("LoadAll after reopen = %+v, want one record with 2 studies", all)
	}
}

func TestStatsSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.StatsRepo()
	ctx := context.Background()

	all, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no records, got %d", len(all))
	}

	studied := time.Date(2024, 3, 1, 10, 0, 0, 500, time.UTC)
	wrong := studied.Add(-time.Hour)
	ws := stats.WordStats{
		WordID:        "7",
		TimesStudied:  4,
		TimesWrong:    2,
		LastStudiedAt: &studied,
		LastWrongAt:   &wrong,
		IsInErrorSet:  true,
		WrongByKind:   map[string]int{"spell": 2},
	}
	if err := repo.Save(ctx, ws); err != nil {
		t.Fatalf("save: %v", err)
	}

	all, err = repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	got := all[0]
	if got.WordID != "7" || got.TimesStudied != 4 || got.TimesWrong != 2 {
		t.Errorf("counts = %+v, want id 7 studied 4 wrong 2", got)
	}
	if !got.IsInErrorSet {
		t.Error("expected word in error set")
	}
	if got.LastStudiedAt == nil || !got.LastStudiedAt.Equal(studied) {
		t.Errorf("LastStudiedAt = %v, want %v", got.LastStudiedAt, studied)
	}
	if got.LastWrongAt == nil || !got.LastWrongAt.Equal(wrong) {
		t.Errorf("LastWrongAt = %v, want %v", got.LastWrongAt, wrong)
	}
	if got.WrongByKind["spell"] != 2 {
		t.Errorf("WrongByKind[spell] = %d, want 2", got.WrongByKind["spell"])
	}
}

func TestStatsSaveUpserts(t *testing.T) {
	s := openTestStore(t)
	repo := s.StatsRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, stats.WordStats{WordID: "a", TimesStudied: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, stats.WordStats{WordID: "a", TimesStudied: 5}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	all, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	if all[0].TimesStudied != 5 {
		t.Errorf("TimesStudied = %d, want 5", all[0].TimesStudied)
	}
	if all[0].LastStudiedAt != nil {
		t.Errorf("LastStudiedAt = %v, want nil", all[0].LastStudiedAt)
	}
}

func TestStatsSaveAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.StatsRepo()
	ctx := context.Background()

	records := []stats.WordStats{
		{WordID: "b", TimesStudied: 1},
		{WordID: "a", TimesStudied: 2},
		{WordID: "c", TimesStudied: 3},
	}
	if err := repo.SaveAll(ctx, records); err != nil {
		t.Fatalf("save all: %v", err)
	}

	all, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].WordID != want {
			t.Errorf("all[%d].WordID = %q, want %q", i, all[i].WordID, want)
		}
	}
}

func TestStatsClearError(t *testing.T) {
	s := openTestStore(t)
	repo := s.StatsRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, stats.WordStats{WordID: "x", TimesWrong: 1, IsInErrorSet: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	cleared, err := repo.ClearError(ctx, "x")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !cleared {
		t.Error("expected first clear to report true")
	}

	cleared, err = repo.ClearError(ctx, "x")
	if err != nil {
		t.Fatalf("clear again: %v", err)
	}
	if cleared {
		t.Error("expected second clear to report false")
	}

	cleared, err = repo.ClearError(ctx, "missing")
	if err != nil {
		t.Fatalf("clear missing: %v", err)
	}
	if cleared {
		t.Error("expected clear of unknown word to report false")
	}

	all, _ := repo.LoadAll(ctx)
	if all[0].IsInErrorSet {
		t.Error("expected word out of error set")
	}
	if all[0].TimesWrong != 1 {
		t.Errorf("TimesWrong = %d, want 1", all[0].TimesWrong)
	}
}

func TestStatsReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.StatsRepo()
	ctx := context.Background()

	if err := repo.SaveAll(ctx, []stats.WordStats{{WordID: "a"}, {WordID: "b"}}); err != nil {
		t.Fatalf("save all: %v", err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	all, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty after reset, got %d", len(all))
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n <= prev {
			t.Errorf("sequence %d not greater than %d", n, prev)
		}
		prev = n
	}
}

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "s1", Action: "start", Mode: "spell"},
		{SessionID: "s1", Action: "end", Mode: "spell", QuestionsServed: 10, CorrectAnswers: 7, DurationSecs: 120},
		{SessionID: "s2", Action: "start", Mode: "mixed", Room: "42"},
		{SessionID: "s2", Action: "end", Mode: "mixed", Room: "42", QuestionsServed: 10, CorrectAnswers: 9, DurationSecs: 60},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].SessionID != "s2" || got[1].SessionID != "s1" {
		t.Errorf("order = [%s %s], want [s2 s1]", got[0].SessionID, got[1].SessionID)
	}
	if got[0].Room != "42" {
		t.Errorf("Room = %q, want 42", got[0].Room)
	}
	if got[1].Room != "" {
		t.Errorf("Room = %q, want empty", got[1].Room)
	}
	if got[1].CorrectAnswers != 7 || got[1].QuestionsServed != 10 || got[1].DurationSecs != 120 {
		t.Errorf("s1 summary = %+v", got[1])
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].SessionID != "s2" {
		t.Errorf("limited = %+v, want only s2", limited)
	}

	future, err := repo.QuerySessionSummaries(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("expected no summaries after now, got %d", len(future))
	}
}

func TestWordAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	acc, n, err := repo.WordAccuracy(ctx, "w1")
	if err != nil {
		t.Fatalf("accuracy (empty): %v", err)
	}
	if acc != 0 || n != 0 {
		t.Errorf("empty accuracy = (%v, %d), want (0, 0)", acc, n)
	}

	answers := []AnswerEventData{
		{SessionID: "s", WordID: "w1", Kind: "spell", Correct: true},
		{SessionID: "s", WordID: "w1", Kind: "spell", Correct: false, GivenAnswer: "aple"},
		{SessionID: "s", WordID: "w1", Kind: "recall", Correct: true},
		{SessionID: "s", WordID: "w1", Kind: "recall", Correct: true},
		{SessionID: "s", WordID: "w2", Kind: "spell", Correct: false, Forgot: true},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	acc, n, err = repo.WordAccuracy(ctx, "w1")
	if err != nil {
		t.Fatalf("accuracy: %v", err)
	}
	if n != 4 {
		t.Errorf("count = %d, want 4", n)
	}
	if acc != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", acc)
	}
}

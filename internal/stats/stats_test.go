package stats

import (
	"testing"
	"time"
)

func TestRecordAnswerCorrect(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var ws WordStats
	ws.RecordAnswer(true, "spell", now)

	if ws.TimesStudied != 1 {
		t.Errorf("TimesStudied = %d, want 1", ws.TimesStudied)
	}
	if ws.TimesWrong != 0 {
		t.Errorf("TimesWrong = %d, want 0", ws.TimesWrong)
	}
	if ws.LastStudiedAt == nil || !ws.LastStudiedAt.Equal(now) {
		t.Errorf("LastStudiedAt = %v, want %v", ws.LastStudiedAt, now)
	}
	if ws.LastWrongAt != nil {
		t.Errorf("LastWrongAt = %v, want nil", ws.LastWrongAt)
	}
	if ws.IsInErrorSet {
		t.Error("expected word outside error set after a correct answer")
	}
}

func TestRecordAnswerMiss(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var ws WordStats
	ws.RecordAnswer(false, "recall", now)
	ws.RecordAnswer(false, "recall", now)

	if ws.TimesStudied != 2 || ws.TimesWrong != 2 {
		t.Errorf("counters = %d/%d, want 2/2", ws.TimesStudied, ws.TimesWrong)
	}
	if !ws.IsInErrorSet {
		t.Error("expected word in error set after a miss")
	}
	if ws.LastWrongAt == nil || !ws.LastWrongAt.Equal(now) {
		t.Errorf("LastWrongAt = %v, want %v", ws.LastWrongAt, now)
	}
	if got := ws.WrongByKind["recall"]; got != 2 {
		t.Errorf("WrongByKind[recall] = %d, want 2", got)
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		studied, wrong int
		want           float64
	}{
		{0, 0, 0},
		{4, 1, 0.75},
		{2, 2, 0},
		{5, 0, 1},
	}
	for _, tt := range tests {
		ws := WordStats{TimesStudied: tt.studied, TimesWrong: tt.wrong}
		if got := ws.Accuracy(); got != tt.want {
			t.Errorf("Accuracy(%d, %d) = %v, want %v", tt.studied, tt.wrong, got, tt.want)
		}
	}
}

func TestBookGetMissing(t *testing.T) {
	b := NewBook()
	ws, ok := b.Get("w1")
	if ok {
		t.Error("expected ok=false for unknown word")
	}
	if ws.WordID != "w1" || ws.TimesStudied != 0 {
		t.Errorf("Get(unknown) = %+v, want zero record for w1", ws)
	}
}

func TestBookIsolatesCopies(t *testing.T) {
	now := time.Now()
	b := NewBook()
	ws := WordStats{WordID: "w1"}
	ws.RecordAnswer(false, "spell", now)
	b.Set(ws)

	ws.WrongByKind["spell"] = 99
	got, _ := b.Get("w1")
	if got.WrongByKind["spell"] != 1 {
		t.Errorf("stored WrongByKind mutated through caller copy: %d", got.WrongByKind["spell"])
	}

	got.TimesWrong = 42
	again, _ := b.Get("w1")
	if again.TimesWrong != 1 {
		t.Errorf("stored TimesWrong mutated through returned copy: %d", again.TimesWrong)
	}
}

func TestBookClearError(t *testing.T) {
	b := NewBook(
		WordStats{WordID: "a", TimesStudied: 1, TimesWrong: 1, IsInErrorSet: true},
		WordStats{WordID: "b", TimesStudied: 1},
	)

	if !b.ClearError("a") {
		t.Error("ClearError(a) = false, want true")
	}
	if b.ClearError("a") {
		t.Error("second ClearError(a) = true, want false")
	}
	if b.ClearError("missing") {
		t.Error("ClearError(missing) = true, want false")
	}
	ws, _ := b.Get("a")
	if ws.IsInErrorSet {
		t.Error("expected a outside error set")
	}
	if ws.TimesWrong != 1 {
		t.Errorf("TimesWrong = %d, want counters untouched", ws.TimesWrong)
	}
}

func TestBookErrorSetAndAll(t *testing.T) {
	b := NewBook(
		WordStats{WordID: "c", IsInErrorSet: true},
		WordStats{WordID: "a", IsInErrorSet: true},
		WordStats{WordID: "b"},
	)
	got := b.ErrorSet()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("ErrorSet() = %v, want [a c]", got)
	}
	if n := len(b.All()); n != 3 || b.Len() != 3 {
		t.Errorf("All() len = %d, Len() = %d, want 3", n, b.Len())
	}
}

func TestDifficultyOf(t *testing.T) {
	tests := []struct {
		wrong int
		want  Difficulty
	}{
		{0, DifficultyEasy},
		{1, DifficultyMedium},
		{2, DifficultyMedium},
		{3, DifficultyHard},
		{7, DifficultyHard},
	}
	for _, tt := range tests {
		if got := DifficultyOf(WordStats{TimesWrong: tt.wrong}); got != tt.want {
			t.Errorf("DifficultyOf(%d) = %q, want %q", tt.wrong, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	b := NewBook(
		WordStats{WordID: "a", TimesStudied: 2},
		WordStats{WordID: "b", TimesStudied: 3, TimesWrong: 1, IsInErrorSet: true},
		WordStats{WordID: "c", TimesStudied: 1, TimesWrong: 1},
	)
	got := Summarize([]string{"a", "b", "c", "d"}, b)
	want := Summary{Total: 4, Studied: 3, Mastered: 2, NeedPractice: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

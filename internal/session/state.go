package session

import (
	"errors"
	"slices"
	"time"

	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/vocab"
)

var (
	// ErrSessionComplete is returned by operations on a completed session.
	ErrSessionComplete = errors.New("session complete")

	// ErrAlreadyAnswered is returned when the current occurrence has
	// already been answered.
	ErrAlreadyAnswered = errors.New("item already answered")
)

// Mode selects how misses are handled.
type Mode string

const (
	// ModeStandard requeues missed words according to the policy.
	ModeStandard Mode = "standard"

	// ModeMixed never requeues.
	ModeMixed Mode = "mixed"

	// ModeReview works through the error set. Misses are not requeued and
	// a correct answer clears the word from the error set.
	ModeReview Mode = "review"
)

// AnswerRecord is the stored outcome for a word within a session.
type AnswerRecord struct {
	WordID         string
	IsCorrect      bool
	GivenAnswer    string
	AcceptedAnswer string
	Kind           Kind
	Prompt         string

	// Forgot marks an answer revealed without an attempt.
	Forgot bool

	AnsweredAt time.Time
}

// State is the session state machine. It is InProgress while
// Cursor < len(Items) and Completed afterwards. State is not safe for
// concurrent use.
type State struct {
	// Items is the working list. Requeued occurrences are spliced in
	// directly after the cursor.
	Items []Item

	// Cursor is the index of the current item.
	Cursor int

	CorrectCount   int
	IncorrectCount int

	// AnsweredCount counts advances and drives the requeue policy.
	AnsweredCount int

	// ErrorRequeue holds missed words waiting to be reinserted.
	ErrorRequeue []vocab.Item

	// Reinserted counts requeued occurrences already spliced into Items.
	Reinserted int

	// Misses logs every miss in answer order.
	Misses []AnswerRecord

	Mode      Mode
	Policy    RequeuePolicy
	Stats     stats.Store
	StartedAt time.Time

	records   map[string]AnswerRecord
	templates map[string]Item
	now       func() time.Time
}

// Option configures a State.
type Option func(*State)

// WithMode sets the session mode.
func WithMode(m Mode) Option {
	return func(s *State) { s.Mode = m }
}

// WithPolicy sets the requeue policy.
func WithPolicy(p RequeuePolicy) Option {
	return func(s *State) { s.Policy = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// New creates a session over items. A nil store is replaced by an empty
// in-memory book.
func New(items []Item, store stats.Store, opts ...Option) *State {
	s := &State{
		Mode:   ModeStandard,
		Policy: DefaultPolicy(),
		Stats:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Stats == nil {
		s.Stats = stats.NewBook()
	}
	if s.Policy == nil {
		s.Policy = NoRequeue{}
	}
	s.Reset(items)
	return s
}

// IsComplete reports whether the cursor has moved past the last item.
func (s *State) IsComplete() bool {
	return s.Cursor >= len(s.Items)
}

// Current returns the current item.
func (s *State) Current() (Item, bool) {
	if s.IsComplete() {
		return Item{}, false
	}
	return s.Items[s.Cursor], true
}

// CurrentRecord returns the stored answer for the current item. Fresh
// occurrences, including requeued ones, have no record to replay.
func (s *State) CurrentRecord() (AnswerRecord, bool) {
	it, ok := s.Current()
	if !ok || !it.answered {
		return AnswerRecord{}, false
	}
	rec, ok := s.records[it.WordID]
	return rec, ok
}

// Record returns the latest stored answer for a word.
func (s *State) Record(wordID string) (AnswerRecord, bool) {
	rec, ok := s.records[wordID]
	return rec, ok
}

// SubmitAnswer checks given against the current item and records the
// outcome.
func (s *State) SubmitAnswer(given string) (AnswerRecord, error) {
	if s.IsComplete() {
		return AnswerRecord{}, ErrSessionComplete
	}
	it := &s.Items[s.Cursor]
	if it.answered {
		return AnswerRecord{}, ErrAlreadyAnswered
	}
	correct, accepted := Match(*it, given)
	return s.record(it, given, accepted, correct, false), nil
}

// Reveal records the current item as forgotten. It has the same effect
// as a wrong answer.
func (s *State) Reveal() (AnswerRecord, error) {
	if s.IsComplete() {
		return AnswerRecord{}, ErrSessionComplete
	}
	it := &s.Items[s.Cursor]
	if it.answered {
		return AnswerRecord{}, ErrAlreadyAnswered
	}
	return s.record(it, "", it.Canonical(), false, true), nil
}

func (s *State) record(it *Item, given, accepted string, correct, forgot bool) AnswerRecord {
	now := s.now()
	rec := AnswerRecord{
		WordID:         it.WordID,
		IsCorrect:      correct,
		GivenAnswer:    given,
		AcceptedAnswer: accepted,
		Kind:           it.Kind,
		Prompt:         it.DisplayPrompt,
		Forgot:         forgot,
		AnsweredAt:     now,
	}

	if correct {
		s.CorrectCount++
	} else {
		s.IncorrectCount++
		s.Misses = append(s.Misses, rec)
	}

	ws, _ := s.Stats.Get(it.WordID)
	ws.WordID = it.WordID
	ws.RecordAnswer(correct, string(it.Kind), now)
	if correct && s.Mode == ModeReview {
		ws.IsInErrorSet = false
	}
	s.Stats.Set(ws)

	s.records[it.WordID] = rec
	it.answered = true

	if !correct && s.Mode == ModeStandard {
		s.ErrorRequeue = append(s.ErrorRequeue, it.Word)
		s.templates[it.WordID] = *it
	}
	return rec
}

// Advance moves to the next item. When the policy is due and a missed
// word is waiting, a fresh occurrence of it is spliced in right after the
// cursor so it becomes the next item.
func (s *State) Advance() error {
	if s.IsComplete() {
		return ErrSessionComplete
	}
	s.AnsweredCount++

	if s.Mode == ModeStandard && len(s.ErrorRequeue) > 0 && s.Policy.Due(s.AnsweredCount) {
		word := s.ErrorRequeue[0]
		s.ErrorRequeue = s.ErrorRequeue[1:]

		tmpl, ok := s.templates[word.ID]
		if !ok {
			tmpl = NewItem(word, KindSpell)
		}
		s.Items = slices.Insert(s.Items, s.Cursor+1, tmpl.requeued())
		s.Reinserted++
	}

	s.Cursor++
	return nil
}

// Retreat moves back one item. It reports whether the cursor moved.
func (s *State) Retreat() bool {
	if s.IsComplete() || s.Cursor == 0 {
		return false
	}
	s.Cursor--
	return true
}

// Reset starts a new pass over items. Counters, the requeue and stored
// answers are cleared; the stats store is left alone.
func (s *State) Reset(items []Item) {
	s.Items = make([]Item, len(items))
	for i, it := range items {
		it.answered = false
		s.Items[i] = it
	}
	s.Cursor = 0
	s.CorrectCount = 0
	s.IncorrectCount = 0
	s.AnsweredCount = 0
	s.ErrorRequeue = nil
	s.Reinserted = 0
	s.Misses = nil
	s.records = make(map[string]AnswerRecord)
	s.templates = make(map[string]Item)
	s.StartedAt = s.now()
}

// BeginReview starts an error-set review pass over items.
func (s *State) BeginReview(items []Item) {
	s.Mode = ModeReview
	s.Reset(items)
}

// ReviewErrors restarts the session as a review pass over the distinct
// words of the current list that are in the error set. It returns the
// number of items in the new pass and leaves the session untouched when
// there are none.
func (s *State) ReviewErrors() int {
	var items []Item
	seen := make(map[string]bool)
	for _, it := range s.Items {
		if seen[it.WordID] {
			continue
		}
		seen[it.WordID] = true
		if ws, _ := s.Stats.Get(it.WordID); ws.IsInErrorSet {
			fresh := it
			fresh.IsRequeued = false
			items = append(items, fresh)
		}
	}
	if len(items) == 0 {
		return 0
	}
	s.BeginReview(items)
	return len(items)
}

// Position returns the 1-based index of the current item and the list
// length.
func (s *State) Position() (int, int) {
	return min(s.Cursor+1, len(s.Items)), len(s.Items)
}

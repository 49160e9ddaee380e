// Package quiz implements the screen that runs a study session.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/summary"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
)

// Meta describes a session for the header and the history log.
type Meta struct {
	Title string

	// Label is recorded as the session mode in history.
	Label string

	// Room is the room code of a shared session.
	Room string
}

// QuizScreen implements screen.Screen for an active session.
type QuizScreen struct {
	deps      Deps
	state     *session.State
	meta      Meta
	sessionID string

	input  components.TextInput
	choice components.MultiChoice

	// feedback is the stored answer for the current item, if any.
	feedback *session.AnswerRecord

	confirmQuit bool
	ended       bool
	errMsg      string
	warning     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over an existing session state.
func New(d Deps, st *session.State, meta Meta) *QuizScreen {
	s := &QuizScreen{
		deps:      d,
		state:     st,
		meta:      meta,
		sessionID: uuid.New().String(),
	}
	s.prepare()
	return s
}

// State returns the session being run.
func (s *QuizScreen) State() *session.State {
	return s.state
}

func (s *QuizScreen) Init() tea.Cmd {
	if len(s.state.Items) == 0 {
		s.errMsg = "Nothing to practice here yet."
		return nil
	}
	repo := s.deps.EventRepo
	data := store.SessionEventData{
		SessionID: s.sessionID,
		Action:    "start",
		Mode:      s.meta.Label,
		Room:      s.meta.Room,
	}
	start := func() tea.Msg {
		if repo == nil {
			return sessionStartedMsg{}
		}
		return sessionStartedMsg{Err: repo.AppendSessionEvent(context.Background(), data)}
	}
	if s.choiceActive() {
		return start
	}
	return tea.Batch(start, s.input.Init())
}

func (s *QuizScreen) Title() string {
	return s.meta.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
			{Key: "←", Description: "Previous"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.choiceActive():
		return []layout.KeyHint{
			{Key: "1-4", Description: "Choose"},
			{Key: "Tab", Description: "Show answer"},
			{Key: "←", Description: "Previous"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Show answer"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		if msg.Err != nil {
			s.warning = fmt.Sprintf("history not saved: %v", msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.errMsg == "" && s.feedback == nil && !s.confirmQuit && !s.choiceActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.end()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.feedback != nil {
		if key == "left" {
			return s, s.back()
		}
		return s, s.advance()
	}

	if key == "tab" {
		return s, s.reveal()
	}

	if s.choiceActive() {
		if key == "left" {
			return s, s.back()
		}
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, s.submit(s.choice.Chosen())
		}
		return s, nil
	}

	if key == "enter" {
		if strings.TrimSpace(s.input.Value()) == "" {
			return s, nil
		}
		return s, s.submit(s.input.Value())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// prepare sets up the answer widgets for the current item, replaying the
// stored answer when the item was already answered.
func (s *QuizScreen) prepare() tea.Cmd {
	s.feedback = nil
	it, ok := s.state.Current()
	if !ok {
		return nil
	}
	if rec, ok := s.state.CurrentRecord(); ok {
		s.feedback = &rec
	}

	if it.Kind.IsChoice() && len(it.Options) > 0 {
		s.choice = components.NewMultiChoice(it.Options)
		if s.feedback != nil {
			s.choice.ChosenIndex = slices.Index(it.Options, s.feedback.GivenAnswer)
			s.choice.Resolve(it.Canonical())
		}
		return nil
	}

	s.input = components.NewTextInput("Type the word...", false, 64)
	if s.feedback != nil {
		s.input.SetValue(s.feedback.GivenAnswer)
		s.input.Submit(s.feedback.IsCorrect)
		return nil
	}
	return s.input.Init()
}

func (s *QuizScreen) choiceActive() bool {
	it, ok := s.state.Current()
	return ok && it.Kind.IsChoice() && len(it.Options) > 0
}

func (s *QuizScreen) submit(given string) tea.Cmd {
	rec, err := s.state.SubmitAnswer(given)
	if err != nil {
		return s.handleStateErr(err)
	}
	s.recorded(rec)
	return nil
}

func (s *QuizScreen) reveal() tea.Cmd {
	rec, err := s.state.Reveal()
	if err != nil {
		return s.handleStateErr(err)
	}
	s.recorded(rec)
	return nil
}

func (s *QuizScreen) handleStateErr(err error) tea.Cmd {
	if errors.Is(err, session.ErrSessionComplete) {
		return s.end()
	}
	// ErrAlreadyAnswered: show the stored answer instead.
	return s.prepare()
}

// recorded shows feedback for rec and persists it.
func (s *QuizScreen) recorded(rec session.AnswerRecord) {
	s.feedback = &rec
	if it, ok := s.state.Current(); ok {
		if s.choiceActive() {
			s.choice.Submitted = true
			s.choice.ChosenIndex = slices.Index(it.Options, rec.GivenAnswer)
			s.choice.Resolve(it.Canonical())
		} else {
			s.input.Submit(rec.IsCorrect)
		}
	}

	ctx := context.Background()
	if s.deps.StatsRepo != nil {
		ws, _ := s.state.Stats.Get(rec.WordID)
		if err := s.deps.StatsRepo.Save(ctx, ws); err != nil {
			s.warning = fmt.Sprintf("progress not saved: %v", err)
		}
	}
	if s.deps.EventRepo != nil {
		_ = s.deps.EventRepo.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:      s.sessionID,
			WordID:         rec.WordID,
			Kind:           string(rec.Kind),
			Prompt:         rec.Prompt,
			GivenAnswer:    rec.GivenAnswer,
			AcceptedAnswer: rec.AcceptedAnswer,
			Correct:        rec.IsCorrect,
			Forgot:         rec.Forgot,
		})
	}
}

func (s *QuizScreen) advance() tea.Cmd {
	if err := s.state.Advance(); err != nil || s.state.IsComplete() {
		return s.end()
	}
	return s.prepare()
}

func (s *QuizScreen) back() tea.Cmd {
	if !s.state.Retreat() {
		return nil
	}
	return s.prepare()
}

// end records the end event and swaps in the summary screen.
func (s *QuizScreen) end() tea.Cmd {
	if s.ended {
		return nil
	}
	s.ended = true

	now := s.deps.now()
	sum := session.Summarize(s.state, now)
	if s.deps.EventRepo != nil {
		_ = s.deps.EventRepo.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID:       s.sessionID,
			Action:          "end",
			Mode:            s.meta.Label,
			Room:            s.meta.Room,
			QuestionsServed: sum.Correct + sum.Incorrect,
			CorrectAnswers:  sum.Correct,
			DurationSecs:    int(sum.Duration.Seconds()),
		})
	}

	next := summary.New(sum, s.followups(sum)...)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) followups(sum session.Summary) []summary.Followup {
	if len(sum.Misses) == 0 {
		return nil
	}
	d := s.deps
	misses := sum.Misses
	out := []summary.Followup{{
		Key:   "r",
		Label: "Retry mistakes",
		Next:  func() screen.Screen { return NewRetry(d, misses) },
	}}
	if s.state.Mode == session.ModeStandard {
		st := s.state
		out = append(out, summary.Followup{
			Key:   "v",
			Label: "Review error words",
			Next: func() screen.Screen {
				if st.ReviewErrors() == 0 {
					return nil
				}
				return New(d, st, Meta{Title: "Review errors", Label: "review"})
			},
		})
	}
	return out
}

package quiz

import (
	"strings"
	"time"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/prng"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/vocab"
)

// Deps carries everything a quiz needs. The repos may be nil, in which
// case progress is kept in memory only.
type Deps struct {
	Words     []vocab.Item
	Book      *stats.Book
	StatsRepo store.StatsRepo
	EventRepo store.EventRepo
	Config    config.Config

	// Now and Source default to the wall clock and an unseeded source.
	Now    func() time.Time
	Source prng.Source
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) src() prng.Source {
	if d.Source != nil {
		return d.Source
	}
	return prng.Unseeded()
}

func (d Deps) book() *stats.Book {
	if d.Book == nil {
		return stats.NewBook()
	}
	return d.Book
}

func (d Deps) policy() session.RequeuePolicy {
	p, err := d.Config.Policy()
	if err != nil {
		return session.DefaultPolicy()
	}
	return p
}

func (d Deps) newState(items []session.Item, mode session.Mode) *session.State {
	opts := []session.Option{session.WithMode(mode), session.WithPolicy(d.policy())}
	if d.Now != nil {
		opts = append(opts, session.WithClock(d.Now))
	}
	return session.New(items, d.book(), opts...)
}

// NewPractice starts a scheduled session presenting every word as kind.
func NewPractice(d Deps, kind session.Kind) *QuizScreen {
	items := session.ScoreAndBuild(d.Words, d.book(), d.now(), kind, d.src())
	return New(d, d.newState(items, session.ModeStandard), Meta{
		Title: kind.Label(),
		Label: string(kind),
	})
}

// NewMixed starts a mixed session of Config.MixedQuestions questions.
func NewMixed(d Deps) *QuizScreen {
	n := d.Config.MixedQuestions
	if n <= 0 {
		n = session.RoomQuestions
	}
	items := session.BuildMixed(d.Words, n, d.src())
	return New(d, d.newState(items, session.ModeMixed), Meta{Title: "Mixed", Label: "mixed"})
}

// NewRoom starts the shared mixed session for a room code.
func NewRoom(d Deps, code string) (*QuizScreen, error) {
	items, err := session.BuildRoom(d.Words, code)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	return New(d, d.newState(items, session.ModeMixed), Meta{
		Title: "Room " + code,
		Label: "room",
		Room:  code,
	}), nil
}

// NewReview starts a pass over the error set presenting words as kind.
func NewReview(d Deps, kind session.Kind) *QuizScreen {
	items := session.ErrorSetItems(d.Words, d.book(), kind, d.src())
	return New(d, d.newState(items, session.ModeReview), Meta{Title: "Review errors", Label: "review"})
}

// NewRetry starts a mixed session over the words missed in a finished one.
func NewRetry(d Deps, misses []session.AnswerRecord) *QuizScreen {
	items := session.RetryErrors(misses, d.Words, d.src())
	return New(d, d.newState(items, session.ModeMixed), Meta{Title: "Retry mistakes", Label: "retry"})
}

// Package home implements the main menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/history"
	"github.com/abhisek/lexiz/internal/screens/quiz"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

const (
	itemReview  = 5
	itemHistory = 6
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps quiz.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(d quiz.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}
	practice := func(k session.Kind) func() tea.Cmd {
		return push(func() screen.Screen { return quiz.NewPractice(d, k) })
	}

	items := []components.MenuItem{
		{Label: "SPELL", Hint: "Type the word for each meaning", Action: practice(session.KindSpell)},
		{Label: "RECOGNIZE", Hint: "Pick the meaning of each word", Action: practice(session.KindRecognize)},
		{Label: "RECALL", Hint: "Pick the word for each meaning", Action: practice(session.KindRecall)},
		{Label: "MIXED", Hint: "A short mix of all three", Action: push(func() screen.Screen { return quiz.NewMixed(d) })},
		{Label: "ROOM", Hint: "Same questions as everyone with your code", Action: push(func() screen.Screen { return quiz.NewRoomEntry(d) })},
		{Label: "REVIEW ERRORS", Hint: "Go over the words you missed", Action: push(func() screen.Screen { return quiz.NewReview(d, session.KindSpell) })},
		{Label: "HISTORY", Hint: "Past sessions", Action: push(func() screen.Screen { return history.New(d.EventRepo) })},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	h := &HomeScreen{deps: d, menu: components.NewMenu(items)}
	h.refresh()
	return h
}

// refresh enables or disables items that depend on current progress.
func (h *HomeScreen) refresh() {
	h.menu.Items[itemReview].Disabled = h.errorCount() == 0
	h.menu.Items[itemHistory].Disabled = h.deps.EventRepo == nil
	if h.menu.Items[h.menu.Selected].Disabled {
		h.menu.Selected = 0
	}
}

func (h *HomeScreen) errorCount() int {
	if h.deps.Book == nil {
		return 0
	}
	return len(h.deps.Book.ErrorSet())
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.refresh()
	compact := layout.IsCompactHeight(height)
	cw := components.ContentWidth(width)

	var ids []string
	for _, w := range h.deps.Words {
		ids = append(ids, w.ID)
	}
	var store stats.Store = stats.NewBook()
	if h.deps.Book != nil {
		store = h.deps.Book
	}
	sum := stats.Summarize(ids, store)

	labels := make([]string, len(h.menu.Items))
	disabled := make(map[int]bool)
	for i, it := range h.menu.Items {
		labels[i] = it.Label
		disabled[i] = it.Disabled
	}

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(sum, h.errorCount(), cw),
		renderMenu(labels, h.menu.Selected, disabled, cw, compact),
	}
	if hint := h.menu.SelectedHint(); hint != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(hint))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

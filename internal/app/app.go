// Package app wires the router, screens and frame into a Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/home"
	"github.com/abhisek/lexiz/internal/screens/quiz"
	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/vocab"
)

// Options holds the loaded vocabulary, progress and repositories.
type Options struct {
	Words     []vocab.Item
	Book      *stats.Book
	StatsRepo store.StatsRepo
	EventRepo store.EventRepo
	Config    config.Config

	// Start, when set, opens on top of home at launch.
	Start screen.Screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	book   *stats.Book
	init   tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Book == nil {
		opts.Book = stats.NewBook()
	}
	deps := quiz.Deps{
		Words:     opts.Words,
		Book:      opts.Book,
		StatsRepo: opts.StatsRepo,
		EventRepo: opts.EventRepo,
		Config:    opts.Config,
	}
	m := AppModel{
		router: router.New(home.New(deps)),
		book:   opts.Book,
	}
	if opts.Start != nil {
		m.init = m.router.Push(opts.Start)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	studied := 0
	for _, ws := range m.book.All() {
		if ws.Studied() {
			studied++
		}
	}
	header := layout.RenderHeader(title, len(m.book.ErrorSet()), studied, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

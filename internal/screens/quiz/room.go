package quiz

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// RoomScreen asks for a room code and starts the shared session for it.
type RoomScreen struct {
	deps   Deps
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*RoomScreen)(nil)
var _ screen.KeyHintProvider = (*RoomScreen)(nil)

// NewRoomEntry creates a RoomScreen.
func NewRoomEntry(d Deps) *RoomScreen {
	return &RoomScreen{
		deps:  d,
		input: components.NewTextInput("e.g. 42", true, 12),
	}
}

func (r *RoomScreen) Init() tea.Cmd {
	return r.input.Init()
}

func (r *RoomScreen) Title() string {
	return "Join a room"
}

func (r *RoomScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Join"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *RoomScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return r, r.join()
		}
	}
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r *RoomScreen) join() tea.Cmd {
	q, err := NewRoom(r.deps, r.input.Value())
	if err != nil {
		if errors.Is(err, session.ErrInvalidRoomCode) {
			r.errMsg = "Room codes are made of digits only."
		} else {
			r.errMsg = err.Error()
		}
		return nil
	}
	r.errMsg = ""
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: q} }
}

func (r *RoomScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Enter a room code"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render("Everyone using the same code gets the same questions."))
	b.WriteString("\n\n")
	b.WriteString(center.Render("Room: " + r.input.View()))
	if r.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Error).Render(r.errMsg))
	}
	return b.String()
}

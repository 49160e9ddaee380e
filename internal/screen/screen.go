// Package screen defines what the router needs from a lexiz screen: the
// home menu, a running quiz, its summary and the session history.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiz/internal/ui/layout"
)

// Screen is one page on the router's stack.
type Screen interface {
	// Init runs once when the screen is pushed or swapped in. A quiz uses
	// it to record the session start.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the area between header and footer.
	View(width, height int) string

	// Title is shown centred in the header, e.g. "Spell it" or "Room 4321".
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints, which
// change as a quiz moves between answering, feedback and quit confirm.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

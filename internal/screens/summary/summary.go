package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// Followup is an action offered from the summary, such as retrying the
// missed words. Next may return nil when there is nothing to do.
type Followup struct {
	Key   string
	Label string
	Next  func() screen.Screen
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary   session.Summary
	followups []Followup
	notice    string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(sum session.Summary, followups ...Followup) *SummaryScreen {
	return &SummaryScreen{summary: sum, followups: followups}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	for _, f := range s.followups {
		hints = append(hints, layout.KeyHint{Key: strings.ToUpper(f.Key), Description: f.Label})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()
	switch key {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	for _, f := range s.followups {
		if !strings.EqualFold(key, f.Key) || f.Next == nil {
			continue
		}
		next := f.Next()
		if next == nil {
			s.notice = "Nothing left to review."
			return s, nil
		}
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d      Correct: %d      Wrong: %d      Score: %d%%",
		sum.Questions, sum.Correct, sum.Incorrect, sum.Score)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	if kinds := kindLine(sum); kinds != "" {
		b.WriteString(center.Foreground(theme.TextDim).Render(kinds))
		b.WriteString("\n\n")
	}

	if len(sum.Misses) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("To practice")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, m := range sum.Misses {
			given := m.GivenAnswer
			if m.Forgot {
				given = "(shown)"
			}
			line := fmt.Sprintf("  %s  →  %s   you: %s", m.Prompt, m.AcceptedAnswer, given)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Accent).Render(s.notice))
	}

	return b.String()
}

// kindLine renders per-kind error counts, e.g. "Spell it: 2 wrong".
func kindLine(sum session.Summary) string {
	if len(sum.KindCounts) < 2 {
		return ""
	}
	var parts []string
	for _, k := range session.MixedKinds {
		n, ok := sum.KindCounts[k]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d/%d wrong", k.Label(), sum.ErrorsByKind[k], n))
	}
	return strings.Join(parts, "    ")
}

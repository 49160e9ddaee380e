package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderNotice(width, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	it, ok := s.state.Current()
	if !ok {
		return renderNotice(width, "Session complete.")
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(s.renderInfoLine(it, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.TextDim).Render(instruction(it.Kind)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(theme.Prompt.Render(it.DisplayPrompt)))
	b.WriteString("\n\n")

	if s.choiceActive() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	} else {
		b.WriteString(center.Render("Answer: " + s.input.View()))
		b.WriteString("\n")
	}

	if s.feedback != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(*s.feedback, it, width))
	}

	if s.warning != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Accent).Render(s.warning))
	}

	return b.String()
}

func (s *QuizScreen) renderInfoLine(it session.Item, width int) string {
	label := "  " + it.Kind.Label()
	if it.IsRequeued {
		label += "  (again)"
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(label)

	pos, total := s.state.Position()
	bar := components.NewPositionBar(pos, total, 24).View()
	right := bar + "  " +
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", s.state.CorrectCount)) + "  " +
		lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d", s.state.IncorrectCount))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func instruction(k session.Kind) string {
	switch k {
	case session.KindRecognize:
		return "What does this word mean?"
	case session.KindRecall:
		return "Which word means this?"
	default:
		return "Type the word for:"
	}
}

func renderFeedback(rec session.AnswerRecord, it session.Item, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	switch {
	case rec.IsCorrect:
		b.WriteString(center.Render(theme.Correct.Render("Correct!")))
	case rec.Forgot:
		b.WriteString(center.Render(theme.Revealed.Render("Here it is")))
	default:
		b.WriteString(center.Render(theme.Incorrect.Render("Not quite")))
	}
	b.WriteString("\n")

	if !rec.IsCorrect || len(it.ExpectedAnswers) > 1 {
		b.WriteString(center.Foreground(theme.TextDim).
			Render("Answer: " + strings.Join(it.ExpectedAnswers, " / ")))
		b.WriteString("\n")
	}
	if it.Kind != session.KindRecognize && it.Word.Prompt != "" && it.Word.Prompt != it.DisplayPrompt {
		b.WriteString(center.Foreground(theme.TextDim).Render(it.Word.Prompt))
		b.WriteString("\n")
	}
	if it.Kind == session.KindRecognize {
		b.WriteString(center.Foreground(theme.TextDim).Render(it.Word.Term() + " · " + it.Word.Prompt))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Answers so far are already saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderNotice(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", msg))
}

package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

const titleFull = `██╗     ███████╗██╗  ██╗██╗███████╗
██║     ██╔════╝╚██╗██╔╝██║╚══███╔╝
██║     █████╗   ╚███╔╝ ██║  ███╔╝
██║     ██╔══╝   ██╔██╗ ██║ ███╔╝
███████╗███████╗██╔╝ ██╗██║███████╗
╚══════╝╚══════╝╚═╝  ╚═╝╚═╝╚══════╝`

const titleCompact = "L · E · X · I · Z"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the vocabulary summary in a double-bordered box.
func renderStatsBar(sum stats.Summary, errors, cw int) string {
	total := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	good := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	bad := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	info := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)

	line := strings.Join([]string{
		total.Render(fmt.Sprintf("%d WORDS", sum.Total)),
		info.Render(fmt.Sprintf("%d STUDIED", sum.Studied)),
		good.Render(fmt.Sprintf("%d MASTERED", sum.Mastered)),
		bad.Render(fmt.Sprintf("%d TO FIX", errors)),
	}, "  ")

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func renderMenu(items []string, selected int, disabled map[int]bool, cw int, compact bool) string {
	var rows []string
	for i, label := range items {
		if compact {
			switch {
			case disabled[i]:
				rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+label))
			case i == selected:
				rows = append(rows, theme.Selected.Render(" ▸ "+label))
			default:
				rows = append(rows, theme.Unselected.Render("   "+label))
			}
			continue
		}
		rows = append(rows, components.Button(label, i == selected, disabled[i], buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

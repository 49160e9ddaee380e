// Package layout renders the frame shared by every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	msg := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
	return msg
}

// bar is the bordered strip used above and below the content.
var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader renders the top bar: app name on the left, the screen title
// centred, and the error-set size and studied count on the right.
func RenderHeader(title string, errors, studied int, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Lexiz")
	name := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	counts := lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d to fix", errors)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("✓ %d studied", studied))

	inner := max(width-4, 0)
	bw, nw, cw := lipgloss.Width(brand), lipgloss.Width(name), lipgloss.Width(counts)

	// Centre the title on the whole bar, not on the space left over.
	gapL := max((inner-nw)/2-bw, 1)
	gapR := max(inner-bw-gapL-nw-cw, 1)

	line := brand + strings.Repeat(" ", gapL) + name + strings.Repeat(" ", gapR) + counts
	return bar.Width(width).Render(line)
}

// RenderFooter renders the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

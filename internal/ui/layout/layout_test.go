package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Spell", 3, 42, 100)
	for _, want := range []string{"Lexiz", "Spell", "3 to fix", "42 studied"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}, 80)
	if !strings.Contains(f, "Enter") || !strings.Contains(f, "Quit") {
		t.Errorf("footer missing hints: %q", f)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", 0, 0, 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)

	if got := strings.Count(frame, "\n") + 1; got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
	if !strings.Contains(frame, "body") {
		t.Error("frame missing content")
	}
}

package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
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

func TestIsCompact(t *testing.T) {
	if !IsCompact(90, 30) {
		t.Error("narrow terminal should be compact")
	}
	if !IsCompact(120, 18) {
		t.Error("short terminal should be compact")
	}
	if IsCompact(120, 30) {
		t.Error("large terminal should not be compact")
	}
}

func TestRenderHeader_Score(t *testing.T) {
	h := RenderHeader("Quiz", HeaderStatus{Score: 3, Total: 6, Level: "Medium"}, 100)
	if !strings.Contains(h, "3/6") {
		t.Errorf("header missing score: %q", h)
	}
	if !strings.Contains(h, "Medium") {
		t.Errorf("header missing level: %q", h)
	}
	if !strings.Contains(h, "HistQuiz") {
		t.Errorf("header missing app name: %q", h)
	}
}

func TestRenderHeader_NoScore(t *testing.T) {
	h := RenderHeader("Home", HeaderStatus{}, 100)
	if strings.Contains(h, "★") {
		t.Errorf("header should hide score when Total is 0: %q", h)
	}
}

func TestRenderFrame_Height(t *testing.T) {
	header := RenderHeader("Home", HeaderStatus{}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}

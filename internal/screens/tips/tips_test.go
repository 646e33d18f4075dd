package tips

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/router"
)

func TestTipsScreen_ListsTips(t *testing.T) {
	view := New().View(100, 40)
	for _, want := range []string{"Quiz Tips", "Study Tips", "timeline"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTipsScreen_EnterPops(t *testing.T) {
	_, cmd := New().Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/screens/home"
	"github.com/abhisek/histquiz/internal/ui/layout"
)

// escScreen records whether it saw esc.
type escScreen struct {
	handles bool
	sawEsc  bool
}

func (s *escScreen) Init() tea.Cmd { return nil }
func (s *escScreen) Title() string { return "Esc" }
func (s *escScreen) View(width, height int) string { return "esc screen" }
func (s *escScreen) HandlesEsc() bool { return s.handles }
func (s *escScreen) Status() layout.HeaderStatus { return layout.HeaderStatus{Score: 3, Total: 5, Level: "Hard"} }
func (s *escScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		s.sawEsc = true
	}
	return s, nil
}

func testModel() AppModel {
	m := newAppModel(context.Background(), Options{})
	m.width, m.height = 100, 30
	return m
}

func TestAppModel_EscPopsPlainScreens(t *testing.T) {
	m := testModel()
	s := &escScreen{}
	m.router.Push(s)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if s.sawEsc {
		t.Error("screen should not see esc")
	}
}

func TestAppModel_EscHandlerSeesEsc(t *testing.T) {
	m := testModel()
	s := &escScreen{handles: true}
	m.router.Push(s)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.sawEsc {
		t.Error("screen should handle esc itself")
	}
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", m.router.Depth())
	}
}

func TestAppModel_HeaderShowsStatus(t *testing.T) {
	m := testModel()
	m.router.Push(&escScreen{})

	content := m.render()
	if !strings.Contains(content, "3/5") {
		t.Error("header should show the score")
	}
	if !strings.Contains(content, "Hard") {
		t.Error("header should show the level")
	}
}

func TestAppModel_UpdateNoteReachesHome(t *testing.T) {
	m := testModel()
	m.router.Push(&escScreen{})

	m.Update(home.UpdateAvailableMsg{Version: "v9.9.9"})
	m.router.Pop()

	if !strings.Contains(m.render(), "v9.9.9") {
		t.Error("home should show the update note")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if got := updated.(AppModel).render(); !strings.Contains(got, "40") {
		t.Errorf("expected size message, got %q", got)
	}
}

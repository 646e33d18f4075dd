package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NumberKeySubmits(t *testing.T) {
	m := NewMultiChoice([]string{"1914", "1917", "1918", "1939"}, 0)
	m, _ = m.Update(keyPress('3'))
	if !m.Submitted {
		t.Fatal("expected submission on number key")
	}
	if m.ChosenIndex != 2 {
		t.Errorf("ChosenIndex = %d, want 2", m.ChosenIndex)
	}
	if m.IsCorrect() {
		t.Error("option 3 should be wrong")
	}
}

func TestMultiChoice_LetterKeySubmits(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"}, 1)
	m, _ = m.Update(keyPress('b'))
	if !m.IsCorrect() {
		t.Errorf("expected correct answer, chosen %d", m.ChosenIndex)
	}
}

func TestMultiChoice_ArrowsThenEnter(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"}, 3)
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.Selected != 3 {
		t.Fatalf("Selected = %d, want 3 (clamped)", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.IsCorrect() {
		t.Error("expected correct answer")
	}
}

func TestMultiChoice_IgnoresKeysAfterSubmit(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"}, 0)
	m, _ = m.Update(keyPress('1'))
	m, _ = m.Update(keyPress('2'))
	if m.ChosenIndex != 0 {
		t.Errorf("ChosenIndex changed after submit: %d", m.ChosenIndex)
	}
}

func TestMultiChoice_OutOfRangeKey(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"}, 0)
	m, _ = m.Update(keyPress('4'))
	if m.Submitted {
		t.Error("key beyond option count should be ignored")
	}
}

func TestMultiChoice_ViewLabels(t *testing.T) {
	m := NewMultiChoice([]string{"Verdun", "Somme", "Marne", "Ypres"}, 0)
	v := m.View()
	for _, want := range []string{"A)", "B)", "C)", "D)", "Verdun", "Ypres"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Start", Action: func() tea.Cmd { called = "start"; return nil }},
		{Label: "Locked", Disabled: true},
		{Label: "Quit", Action: func() tea.Cmd { called = "quit"; return nil }},
	})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if called != "quit" {
		t.Errorf("called = %q, want quit", called)
	}
}

func TestMenu_FirstEnabledSelected(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}, {Label: "B"}})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	if !m.DisabledSet()[0] {
		t.Error("item 0 should be disabled")
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	p := NewProgressBar("", 1.5, true, 20)
	if !strings.Contains(p.View(), "100%") {
		t.Errorf("percent should clamp to 100%%, got %q", p.View())
	}
	p = NewProgressBar("Q", -1, false, 20)
	if p.View() == "" {
		t.Error("expected non-empty bar")
	}
}

package picker

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/topics"
)

func press(p *PickerScreen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = p.Update(m)
	}
	return cmd
}

func TestPicker_CatalogTopic(t *testing.T) {
	var got *topics.Topic
	picked := false
	p := New(topics.DefaultTopics(), nil, func(tp *topics.Topic) { got = tp; picked = true })

	cmd := press(p, tea.KeyPressMsg{Code: tea.KeyDown}, tea.KeyPressMsg{Code: tea.KeyDown}, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !picked || got == nil || got.ID != "world-war-ii" {
		t.Fatalf("picked %+v, want world-war-ii", got)
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestPicker_AllTopics(t *testing.T) {
	ww1 := topics.DefaultTopics()[0]
	got := &ww1
	p := New(topics.DefaultTopics(), &ww1, func(tp *topics.Topic) { got = tp })
	if p.menu.Selected != 1 {
		t.Fatalf("current topic should be preselected, got %d", p.menu.Selected)
	}
	press(p, tea.KeyPressMsg{Code: tea.KeyUp}, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got != nil {
		t.Errorf("expected nil for all topics, got %+v", got)
	}
}

func TestPicker_CustomTopic(t *testing.T) {
	var got *topics.Topic
	cat := topics.DefaultTopics()
	p := New(cat, nil, func(tp *topics.Topic) { got = tp })
	p.menu.Selected = len(p.menu.Items) - 1
	press(p, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !p.typing {
		t.Fatal("expected text entry mode")
	}

	for _, r := range "Battle of Britain" {
		p.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	cmd := press(p, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got == nil || got.Name != "Battle of Britain" {
		t.Fatalf("got %+v, want custom Battle of Britain", got)
	}
	if got.ID != "battle-of-britain" {
		t.Errorf("ID = %q", got.ID)
	}
	if cmd == nil {
		t.Error("expected pop command")
	}
}

func TestPicker_EscLeavesTyping(t *testing.T) {
	p := New(topics.DefaultTopics(), nil, nil)
	p.typing = true
	cmd := press(p, tea.KeyPressMsg{Code: tea.KeyEscape})
	if p.typing {
		t.Error("esc should leave text entry")
	}
	if cmd != nil {
		t.Error("esc in text entry should not pop")
	}
}

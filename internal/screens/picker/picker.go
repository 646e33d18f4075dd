// Package picker lets the learner limit quizzes to one topic.
package picker

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/topics"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/layout"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

const maxCustomLen = 60

// PickerScreen lists the catalog plus "all topics" and a free-text entry.
type PickerScreen struct {
	catalog []topics.Topic
	onPick  func(*topics.Topic)
	menu    components.Menu
	input   components.TextInput
	typing  bool
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)
var _ screen.EscHandler = (*PickerScreen)(nil)

// New creates a PickerScreen. onPick receives nil for "all topics".
func New(catalog []topics.Topic, current *topics.Topic, onPick func(*topics.Topic)) *PickerScreen {
	p := &PickerScreen{
		catalog: catalog,
		onPick:  onPick,
		input:   components.NewTextInput("e.g. The Battle of Britain", maxCustomLen),
	}

	items := []components.MenuItem{{Label: "All topics (adaptive)", Action: func() tea.Cmd { return p.pick(nil) }}}
	for _, t := range catalog {
		t := t
		items = append(items, components.MenuItem{Label: t.Name, Action: func() tea.Cmd { return p.pick(&t) }})
	}
	items = append(items, components.MenuItem{Label: "Custom topic...", Action: func() tea.Cmd {
		p.typing = true
		return p.input.Init()
	}})
	p.menu = components.NewMenu(items)

	if current != nil {
		p.menu.Selected = len(items) - 1
		for i, t := range catalog {
			if t.ID == current.ID {
				p.menu.Selected = i + 1
			}
		}
	}
	return p
}

func (p *PickerScreen) pick(t *topics.Topic) tea.Cmd {
	if p.onPick != nil {
		p.onPick(t)
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) HandlesEsc() bool { return true }

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	if p.typing {
		if isKey {
			switch kmsg.String() {
			case "esc":
				p.typing = false
				return p, nil
			case "enter":
				name := p.input.Value()
				if name == "" {
					return p, nil
				}
				t := topics.Resolve(p.catalog, name)
				return p, p.pick(&t)
			}
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	if isKey && kmsg.String() == "esc" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render("Choose a topic"))
	b.WriteString("\n\n")

	if p.typing {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("Type any World Wars subject:"))
		b.WriteString("\n\n")
		b.WriteString(p.input.View())
		return components.CabinetFrame(components.ArcadeCard(b.String(), cw), width, height)
	}

	b.WriteString(p.menu.View())
	if i := p.menu.Selected - 1; i >= 0 && i < len(p.catalog) {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(p.catalog[i].Description))
	}
	return components.CabinetFrame(components.ArcadeCard(b.String(), cw), width, height)
}

func (p *PickerScreen) Title() string {
	return "Topics"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	if p.typing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Use topic"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

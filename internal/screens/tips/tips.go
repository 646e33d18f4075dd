package tips

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/recommend"
	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/layout"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

// TipsScreen lists quiz and study tips.
type TipsScreen struct{}

var _ screen.Screen = (*TipsScreen)(nil)
var _ screen.KeyHintProvider = (*TipsScreen)(nil)

// New creates a new TipsScreen.
func New() *TipsScreen {
	return &TipsScreen{}
}

func (t *TipsScreen) Init() tea.Cmd {
	return nil
}

func (t *TipsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return t, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return t, nil
}

func (t *TipsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		section("Quiz Tips", recommend.QuizTips(), cw),
		section("Study Tips", recommend.StudyTips(), cw),
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func section(title string, items []string, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(title))
	b.WriteString("\n\n")
	for _, it := range items {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("• " + it))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 2).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (t *TipsScreen) Title() string {
	return "Study Tips"
}

func (t *TipsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Back"},
	}
}

package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/ui/theme"
)

const arcadeTitleFull = `██╗  ██╗██╗███████╗████████╗ ██████╗ ██╗   ██╗██╗███████╗
██║  ██║██║██╔════╝╚══██╔══╝██╔═══██╗██║   ██║██║╚══███╔╝
███████║██║███████╗   ██║   ██║   ██║██║   ██║██║  ███╔╝
██╔══██║██║╚════██║   ██║   ██║▄▄ ██║██║   ██║██║ ███╔╝
██║  ██║██║███████║   ██║   ╚██████╔╝╚██████╔╝██║███████╗
╚═╝  ╚═╝╚═╝╚══════╝   ╚═╝    ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "H · I · S · T · Q · U · I · Z"

const subtitle = "World Wars History Quiz"

// titleFullWidth is the display width of the block-letter title.
const titleFullWidth = 58

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true)

	title := arcadeTitleFull
	if compact || cw < titleFullWidth {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(subtitle))
}

// stats is the dashboard shown above the menu.
type stats struct {
	sessions int
	attempts int
	correct  int
	weakest  string
}

func (s stats) accuracy() float64 {
	if s.attempts == 0 {
		return 0
	}
	return float64(s.correct) / float64(s.attempts)
}

// renderStatsBar renders the dashboard in a double-bordered box.
func renderStatsBar(st stats, topic string, cw int, compact bool) string {
	quizStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	topicStyle := lipgloss.NewStyle().Foreground(theme.Cyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	acc := dimStyle.Render("NO ANSWERS YET")
	if st.attempts > 0 {
		acc = accStyle.Render(fmt.Sprintf("%.0f%% CORRECT", st.accuracy()*100))
	}

	var text string
	if compact {
		text = fmt.Sprintf("%s  %s",
			quizStyle.Render(fmt.Sprintf("★%d", st.sessions)),
			topicStyle.Render(topic))
	} else {
		text = fmt.Sprintf("%s  %s  %s",
			quizStyle.Render(fmt.Sprintf("★ %d QUIZZES", st.sessions)),
			acc,
			topicStyle.Render("◆ "+topic))
		if st.weakest != "" {
			text += "\n" + dimStyle.Render("Needs practice: "+st.weakest)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Cyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// renderLLMBanner renders a warning when no LLM API key is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set OPENAI_API_KEY to start a quiz (see histquiz --help)")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available: run histquiz update", latestVersion))
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

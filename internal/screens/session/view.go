package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/recommend"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

const maxTextWidth = 72

func textWidth(width int) int {
	return min(width-8, maxTextWidth)
}

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width int) string {
	st := s.engine.State
	q := st.CurrentQuestion
	if q == nil {
		return s.renderLoading(width, "Writing your question...")
	}

	var b strings.Builder

	mins := int(st.Elapsed.Minutes())
	secs := int(st.Elapsed.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", st.Topic.Name, st.Level))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %d:%02d",
			st.Answered()+1,
			st.Config.MaxQuestions,
			lipgloss.NewStyle().Foreground(theme.Gold).Render("★"),
			st.Score,
			mins, secs,
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	progress := components.NewProgressBar("",
		float64(st.Answered())/float64(st.Config.MaxQuestions), false, width-4)
	b.WriteString("  " + progress.View())
	b.WriteString("\n\n")

	tw := textWidth(width)
	question := lipgloss.NewStyle().
		Width(tw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	s.choices.Width = tw
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.TextDim).
		Render("Press 1-4 or A-D, or use the arrows and Enter"))

	return b.String()
}

// renderFeedback renders the answer result, the explanation and the
// recommended video.
func (s *SessionScreen) renderFeedback(width int) string {
	st := s.engine.State
	q := st.CurrentQuestion
	tw := textWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	if st.LastAnswerCorrect {
		b.WriteString(theme.Centered(width, theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(theme.Centered(width, theme.Error).Bold(true).Render("Not quite"))
		if q != nil {
			b.WriteString("\n")
			b.WriteString(theme.Centered(width, theme.TextDim).
				Render(fmt.Sprintf("The correct answer was: %s", q.CorrectText())))
		}
	}
	b.WriteString("\n\n")

	if q != nil {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(tw).Foreground(theme.Text).Render(q.Explanation)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderVideo(tw)))
	b.WriteString("\n\n")

	next := "Press Enter for the next question"
	if st.Answered() >= st.Config.MaxQuestions {
		next = "Press Enter to see your results"
	}
	b.WriteString(theme.Centered(width, theme.TextDim).Render(next))
	return b.String()
}

func (s *SessionScreen) renderVideo(tw int) string {
	switch {
	case s.recWaiting:
		return s.spinner.View() + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Finding a video to help you learn more...")
	case s.rec == nil:
		return ""
	case s.rec.Pick != nil && s.rec.Pick.Found():
		return components.ArcadeCard(renderRecommendation(*s.rec.Pick), tw)
	case len(s.rec.Queries) > 0:
		return components.ArcadeCard(renderRecommendation(recommend.Recommendation{Query: s.rec.Queries[0]}), tw)
	}
	return ""
}

// renderRecommendation renders one video suggestion or, when none was
// found, the search hint.
func renderRecommendation(r recommend.Recommendation) string {
	label := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if !r.Found() {
		return label.Render("Learn more: ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(r.Query) + "\n" +
			theme.Hint.Render(recommend.SearchHint)
	}
	v := r.Video
	lines := label.Render("Recommended video") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(v.Title)
	if v.Channel != "" {
		lines += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(v.Channel)
	}
	return lines + "\n" + theme.Link.Render(v.URL)
}

// renderLoading shows the spinner plus any difficulty change.
func (s *SessionScreen) renderLoading(width int, text string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	if s.started {
		switch s.engine.State.LastLevelChange {
		case 1:
			b.WriteString(theme.Centered(width, theme.Gold).Bold(true).
				Render("Great work! Moving up to " + s.engine.State.Level.String()))
			b.WriteString("\n\n")
		case -1:
			b.WriteString(theme.Centered(width, theme.Secondary).
				Render("Let's try an easier one: " + s.engine.State.Level.String()))
			b.WriteString("\n\n")
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		s.spinner.View()+" "+lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(width, theme.Text).Bold(true).Render("End the quiz early?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.TextDim).Render("Your answers so far are saved."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(width, theme.Success).Render("[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderGenError(width int, errMsg string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(width, theme.Error).Bold(true).Render("Couldn't write the next question"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth(width)).Foreground(theme.TextDim).Render(errMsg)))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(width, theme.Text).Render("[R] Try again    [E] End quiz"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return theme.Centered(width, theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

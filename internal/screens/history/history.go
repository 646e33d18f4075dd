package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/recommend"
	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/ui/layout"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Videos   map[string][]store.RecommendationRecord // sessionID → recommendations
	Err      error
}

// HistoryScreen displays past sessions and the videos suggested in them.
type HistoryScreen struct {
	ctx       context.Context
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	videos    map[string][]store.RecommendationRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, eventRepo store.EventRepo) *HistoryScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	return &HistoryScreen{
		ctx:       ctx,
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctx := s.ctx
	repo := s.eventRepo
	return func() tea.Msg {
		return load(ctx, repo)
	}
}

func load(ctx context.Context, repo store.EventRepo) historyLoadedMsg {
	sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessionLimit})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}

	videos := make(map[string][]store.RecommendationRecord)
	recs, err := repo.QueryRecommendations(ctx, store.QueryOpts{})
	if err != nil {
		return historyLoadedMsg{Sessions: sessions, Videos: videos}
	}
	for _, r := range recs {
		videos[r.SessionID] = append(videos[r.SessionID], r)
	}
	return historyLoadedMsg{Sessions: sessions, Videos: videos}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Videos"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.videos = msg.Videos
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Centered(width, theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(width, theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return theme.Centered(width, theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Gold).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+sessionLine(sess))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderVideos(sess.SessionID, width))
		}
	}

	return b.String()
}

// sessionLine formats one completed session.
func sessionLine(sess store.SessionSummaryRecord) string {
	pct := recommend.Percent(sess.CorrectAnswers, sess.QuestionsServed)
	return fmt.Sprintf("%s  %d:%02d  %d/%d (%.0f%%)  %-10s  %s",
		sess.Timestamp.Local().Format("Jan 02, 2006"),
		sess.DurationSecs/60, sess.DurationSecs%60,
		sess.CorrectAnswers, sess.QuestionsServed, pct,
		recommend.BandFor(pct),
		sess.Topic)
}

func (s *HistoryScreen) renderVideos(sessionID string, width int) string {
	recs := s.videos[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(recs) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Render("    No videos suggested in this quiz")) + "\n"
	}

	var b strings.Builder
	for _, r := range recs {
		var line string
		if r.VideoURL != "" {
			line = fmt.Sprintf("    [%s] %s  %s", r.Kind, r.VideoTitle, theme.Link.Render(r.VideoURL))
		} else {
			line = dim.Render(fmt.Sprintf("    [%s] %s", r.Kind, r.Query))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

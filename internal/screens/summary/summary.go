package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/recommend"
	"github.com/abhisek/histquiz/internal/report"
	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/screens/tips"
	"github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/layout"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

// Options wires the summary actions. Every field may be left empty.
type Options struct {
	Ctx       context.Context
	Recommend *recommend.Service
	Events    store.EventRepo
	ReportDir string

	// Retake returns the screen that replaces this one on retake.
	Retake func() screen.Screen
}

type finalLoadedMsg struct {
	Result *recommend.FinalResult
}

type exportDoneMsg struct {
	Path string
	Err  error
}

// SummaryScreen displays the session results and end-of-quiz videos.
type SummaryScreen struct {
	summary *session.Summary
	opts    Options

	final   *recommend.FinalResult
	spinner spinner.Model
	menu    components.Menu
	status  string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary, opts Options) *SummaryScreen {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	s := &SummaryScreen{
		summary: summary,
		opts:    opts,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "RETAKE QUIZ", Disabled: opts.Retake == nil, Action: s.retake},
		{Label: "EXPORT REPORT", Disabled: opts.Events == nil, Action: s.export},
		{Label: "STUDY TIPS", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: tips.New()} }
		}},
		{Label: "HOME", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		}},
	})
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.summary == nil {
		return nil
	}
	if s.opts.Recommend == nil {
		s.final = fallbackResult(s.summary)
		return nil
	}
	svc := s.opts.Recommend
	ctx := s.opts.Ctx
	sum := *s.summary
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return finalLoadedMsg{Result: svc.Final(ctx, sum.SessionID, sum.TotalCorrect, sum.TotalQuestions)}
	})
}

func fallbackResult(sum *session.Summary) *recommend.FinalResult {
	res := &recommend.FinalResult{Band: sum.Band, Percent: sum.Percent}
	for _, q := range recommend.FinalFallback() {
		res.Items = append(res.Items, recommend.Recommendation{Query: q})
	}
	return res
}

func (s *SummaryScreen) Title() string {
	return "Quiz Results"
}

func (s *SummaryScreen) Status() layout.HeaderStatus {
	if s.summary == nil {
		return layout.HeaderStatus{}
	}
	return layout.HeaderStatus{Score: s.summary.TotalCorrect, Total: s.summary.TotalQuestions}
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case finalLoadedMsg:
		s.final = msg.Result
		return s, nil

	case exportDoneMsg:
		if msg.Err != nil {
			s.status = "Export failed: " + msg.Err.Error()
		} else {
			s.status = "Report saved to " + msg.Path
		}
		return s, nil

	case spinner.TickMsg:
		if s.final != nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) retake() tea.Cmd {
	next := s.opts.Retake()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// export writes every recorded answer to the CSV progress file.
func (s *SummaryScreen) export() tea.Cmd {
	ctx := s.opts.Ctx
	repo := s.opts.Events
	dir := s.opts.ReportDir
	return func() tea.Msg {
		path := filepath.Join(dir, report.DefaultFileName)
		rows, err := report.Load(ctx, repo, "")
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		if err := report.WriteCSV(f, rows); err != nil {
			f.Close()
			return exportDoneMsg{Err: err}
		}
		if err := f.Close(); err != nil {
			return exportDoneMsg{Err: err}
		}
		log := logging.FromContext(ctx)
		log.Info().Str("path", path).Int("rows", len(rows)).Msg("report exported")
		return exportDoneMsg{Path: path}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	compact := layout.IsCompact(width, height)

	var sections []string

	headline := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(sum.Band.Headline())
	score := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Score: %d/%d (%.0f%%)", sum.TotalCorrect, sum.TotalQuestions, sum.Percent))
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	meta := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Time %d:%02d   Final level: %s", mins, secs, sum.FinalLevel))
	sections = append(sections, headline+"\n"+score+"\n"+meta)

	sections = append(sections, lipgloss.NewStyle().Width(cw).Foreground(theme.Text).
		Render(sum.Band.Feedback()))

	if !compact && len(sum.TopicResults) > 0 {
		sections = append(sections, renderTopics(sum, cw))
	}

	sections = append(sections, s.renderVideos(cw, compact))

	if s.status != "" {
		sections = append(sections, theme.Hint.Render(s.status))
	}

	sections = append(sections, components.ArcadeMenu(s.menu, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func renderTopics(sum *session.Summary, cw int) string {
	var lines []string
	for _, tr := range sum.TopicResults {
		label := fmt.Sprintf("%-14s %d/%d", truncate(tr.Topic, 14), tr.Correct, tr.Attempted)
		lines = append(lines, components.NewProgressBar(label, tr.Accuracy(), true, cw-4).View())
	}
	var levels []string
	for _, lr := range sum.LevelResults {
		levels = append(levels, fmt.Sprintf("%s %d/%d", lr.Level, lr.Correct, lr.Attempted))
	}
	if len(levels) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(levels, "   ")))
	}
	return strings.Join(lines, "\n")
}

func (s *SummaryScreen) renderVideos(cw int, compact bool) string {
	title := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Videos to watch next")
	if s.final == nil {
		return title + "\n" + s.spinner.View() + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Finding videos for you...")
	}

	items := s.final.Items
	if compact && len(items) > 2 {
		items = items[:2]
	}
	lines := []string{title}
	for i, it := range items {
		if it.Found() {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1,
				lipgloss.NewStyle().Foreground(theme.Text).Render(truncate(it.Video.Title, cw-8))))
			lines = append(lines, "   "+theme.Link.Render(it.Video.URL))
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1,
			lipgloss.NewStyle().Foreground(theme.Text).Render(it.Query)))
		lines = append(lines, "   "+theme.Hint.Render(recommend.SearchHint))
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

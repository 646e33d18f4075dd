package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/screens/history"
	"github.com/abhisek/histquiz/internal/screens/picker"
	sessionscreen "github.com/abhisek/histquiz/internal/screens/session"
	"github.com/abhisek/histquiz/internal/screens/tips"
	sess "github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/topics"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/layout"
)

// Options wires the home screen.
type Options struct {
	Quiz    sessionscreen.Deps
	Catalog []topics.Topic

	// Topic, when set, limits quizzes to one topic.
	Topic *topics.Topic
}

// UpdateAvailableMsg announces a newer release.
type UpdateAvailableMsg struct {
	Version string
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	opts       Options
	menu       components.Menu
	stats      stats
	topic      *topics.Topic
	updateNote string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if len(opts.Catalog) == 0 {
		opts.Catalog = topics.DefaultTopics()
	}
	h := &HomeScreen{opts: opts, topic: opts.Topic}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "START QUIZ", Disabled: !h.llmReady(), Action: h.startQuiz},
		{Label: "CHOOSE TOPIC", Action: func() tea.Cmd {
			p := picker.New(h.opts.Catalog, h.topic, func(t *topics.Topic) { h.topic = t })
			return func() tea.Msg { return router.PushScreenMsg{Screen: p} }
		}},
		{Label: "HISTORY", Disabled: opts.Quiz.Engine.Events == nil, Action: func() tea.Cmd {
			s := history.New(h.opts.Quiz.Ctx, h.opts.Quiz.Engine.Events)
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}},
		{Label: "STUDY TIPS", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: tips.New()} }
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func (h *HomeScreen) llmReady() bool {
	return h.opts.Quiz.Engine.Generator != nil
}

// startQuiz pushes a quiz screen with a planner for the chosen topic.
func (h *HomeScreen) startQuiz() tea.Cmd {
	deps := h.opts.Quiz
	deps.Engine.Planner = sess.NewPlanner(h.opts.Catalog, h.topic, deps.Config)
	s := sessionscreen.New(deps)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the stats after a quiz.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	snaps := h.opts.Quiz.Engine.Snapshots
	if snaps == nil {
		return nil
	}
	ctx := h.opts.Quiz.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		snap, err := snaps.Latest(ctx)
		if err != nil || snap == nil {
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{stats: statsFrom(snap.Data)}
	}
}

// statsFrom totals the snapshot and names the weakest topic and level
// with at least two attempts.
func statsFrom(data store.SnapshotData) stats {
	st := stats{sessions: data.SessionsCompleted}
	worst := 2.0
	for _, p := range data.Progress {
		st.attempts += p.Attempts
		st.correct += p.Correct
		if p.Attempts < 2 {
			continue
		}
		if acc := float64(p.Correct) / float64(p.Attempts); acc < worst {
			worst = acc
			st.weakest = fmt.Sprintf("%s (%s)", p.Topic, p.Level)
		}
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg.stats
		return h, nil
	case UpdateAvailableMsg:
		h.updateNote = msg.Version
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case !h.llmReady():
		return MascotAlert
	case h.stats.attempts > 0 && h.stats.accuracy() >= 0.8:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) topicLabel() string {
	if h.topic == nil {
		return "ALL TOPICS"
	}
	return strings.ToUpper(h.topic.Name)
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, h.topicLabel(), cw, compact))
	if !h.llmReady() {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, components.ArcadeMenu(h.menu, cw, compact))
	if h.updateNote != "" {
		sections = append(sections, renderUpdateNote(h.updateNote, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

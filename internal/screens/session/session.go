package session

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/recommend"
	"github.com/abhisek/histquiz/internal/router"
	"github.com/abhisek/histquiz/internal/screen"
	sess "github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/ui/components"
	"github.com/abhisek/histquiz/internal/ui/layout"
	"github.com/abhisek/histquiz/internal/ui/theme"
)

const (
	recPollInterval = 250 * time.Millisecond
	recWaitLimit    = 20 * time.Second
)

// Deps configures quiz screens.
type Deps struct {
	Engine sess.Deps
	Config sess.Config

	// Ctx carries the logger. Background is used when nil.
	Ctx context.Context

	// QuestionTimeout bounds one generation attempt loop. Zero means none.
	QuestionTimeout time.Duration

	// ReportDir is where the summary screen writes CSV exports.
	ReportDir string
}

func (d Deps) context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// SessionScreen implements screen.Screen for an active quiz.
type SessionScreen struct {
	deps    Deps
	engine  *sess.Engine
	started bool
	focus   sess.Focus

	choices components.MultiChoice
	spinner spinner.Model

	rec         *recommend.AnswerResult
	recWaiting  bool
	recDeadline time.Time

	// reqGen tags question requests so a stale reply is dropped.
	reqGen   int
	retaking bool

	genErr string
	errMsg string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.EscHandler = (*SessionScreen)(nil)

// New creates a quiz screen with a fresh session.
func New(deps Deps) *SessionScreen {
	return newWithEngine(deps, sess.NewEngine(deps.Engine, deps.Config, uuid.New().String()))
}

func newWithEngine(deps Deps, e *sess.Engine) *SessionScreen {
	return &SessionScreen{
		deps:   deps,
		engine: e,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.deps.Engine.Generator == nil || s.deps.Engine.Planner == nil {
		s.errMsg = "No LLM provider configured. Set OPENAI_API_KEY to play."
		return nil
	}
	if s.retaking {
		s.retaking = false
		return s.retake()
	}
	return tea.Batch(
		s.initSession(),
		s.spinner.Tick,
	)
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

func (s *SessionScreen) HandlesEsc() bool { return true }

func (s *SessionScreen) Status() layout.HeaderStatus {
	if !s.started {
		return layout.HeaderStatus{}
	}
	st := s.engine.State
	return layout.HeaderStatus{
		Score: st.Score,
		Total: st.Config.MaxQuestions,
		Level: st.Level.String(),
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if !s.started {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	st := s.engine.State
	switch {
	case st.ShowingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.genErr != "":
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "E", Description: "End quiz"},
		}
	case st.Phase == sess.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Quit"},
		}
	case st.Phase == sess.PhaseActive:
		return []layout.KeyHint{
			{Key: "1-4/A-D", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if !s.started {
		return s.renderLoading(width, "Preparing your quiz...")
	}
	st := s.engine.State
	if st.ShowingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.genErr != "" {
		return renderGenError(width, s.genErr)
	}
	switch st.Phase {
	case sess.PhaseFeedback:
		return s.renderFeedback(width)
	case sess.PhaseActive:
		return s.renderQuestionView(width)
	}
	return s.renderLoading(width, "Writing a "+st.Level.String()+" question about "+st.Topic.Name+"...")
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case questionReadyMsg:
		return s.handleQuestionReady(msg)

	case timerTickMsg:
		return s.handleTimerTick()

	case recPollMsg:
		return s.handleRecPoll()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// initSession loads the answer log and picks the opening focus.
func (s *SessionScreen) initSession() tea.Cmd {
	e := s.engine
	ctx := s.deps.context()
	return func() tea.Msg {
		return sessionInitMsg{Focus: e.Begin(ctx)}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	s.started = true
	s.focus = msg.Focus
	return s, tea.Batch(s.generateNextQuestion(), tickCmd())
}

// generateNextQuestion prepares the request on the UI goroutine and runs
// the generator in the background.
func (s *SessionScreen) generateNextQuestion() tea.Cmd {
	input, err := s.engine.PrepareQuestion()
	if err != nil {
		return func() tea.Msg { return sessionEndMsg{} }
	}
	s.reqGen++
	gen := s.reqGen
	e := s.engine
	ctx := s.deps.context()
	timeout := s.deps.QuestionTimeout
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		q, err := e.Generate(ctx, input)
		return questionReadyMsg{Gen: gen, Question: q, Err: err}
	}
}

func (s *SessionScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	st := s.engine.State
	if msg.Gen != s.reqGen || st.Phase != sess.PhaseLoading {
		return s, nil
	}
	if msg.Err != nil {
		s.genErr = msg.Err.Error()
		return s, nil
	}

	s.engine.Activate(msg.Question)
	s.choices = components.NewMultiChoice(msg.Question.Options[:], msg.Question.Correct-1)
	s.rec = nil
	s.recWaiting = false
	return s, nil
}

func (s *SessionScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	st := s.engine.State
	if st.Phase == sess.PhaseEnding || st.Phase == sess.PhaseSummary {
		return s, nil
	}
	st.Elapsed = time.Since(st.StartTime)
	return s, tickCmd()
}

func (s *SessionScreen) handleRecPoll() (screen.Screen, tea.Cmd) {
	if !s.recWaiting || s.deps.Engine.Recommend == nil {
		return s, nil
	}
	if res, ok := s.deps.Engine.Recommend.Consume(); ok {
		s.rec = res
		s.recWaiting = false
		return s, nil
	}
	if time.Now().After(s.recDeadline) {
		s.recWaiting = false
		return s, nil
	}
	return s, recPollCmd()
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	st := s.engine.State
	if st.Phase == sess.PhaseSummary {
		return s, nil
	}
	if s.deps.Engine.Recommend != nil {
		s.deps.Engine.Recommend.Cancel()
	}
	summary := s.engine.Finish(s.deps.context())
	log := logging.FromContext(s.deps.context())
	log.Info().
		Str("session_id", summary.SessionID).
		Int("score", summary.TotalCorrect).
		Int("total", summary.TotalQuestions).
		Msg("session finished")

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: s.summaryScreen(summary)}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || !s.started {
		if s.errMsg != "" || key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	st := s.engine.State

	if st.ShowingQuitConfirm {
		switch key {
		case "y", "Y":
			st.ShowingQuitConfirm = false
			if st.Answered() == 0 {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			st.ShowingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		st.ShowingQuitConfirm = true
		return s, nil
	}

	if s.genErr != "" {
		switch key {
		case "r", "R":
			s.genErr = ""
			return s, s.generateNextQuestion()
		case "e", "E":
			s.genErr = ""
			if st.Answered() == 0 {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		return s, nil
	}

	switch st.Phase {
	case sess.PhaseActive:
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		if s.choices.Submitted {
			return s, tea.Batch(cmd, s.submitAnswer())
		}
		return s, cmd

	case sess.PhaseFeedback:
		if key == "enter" || key == "space" || key == " " {
			return s.advance()
		}
	}
	return s, nil
}

// submitAnswer scores the chosen option and starts the video lookup.
func (s *SessionScreen) submitAnswer() tea.Cmd {
	ctx := s.deps.context()
	if _, err := s.engine.Answer(ctx, s.choices.ChosenIndex+1); err != nil {
		log := logging.FromContext(ctx)
		log.Warn().Err(err).Msg("answer rejected")
		return nil
	}
	if s.deps.Engine.Recommend == nil {
		return nil
	}
	s.rec = nil
	s.recWaiting = true
	s.recDeadline = time.Now().Add(recWaitLimit)
	return recPollCmd()
}

func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if s.deps.Engine.Recommend != nil {
		s.deps.Engine.Recommend.Cancel()
	}
	s.recWaiting = false
	if !s.engine.Advance(s.deps.context()) {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	return s, tea.Batch(s.generateNextQuestion(), s.spinner.Tick)
}

// retake starts a new session on the same engine so the focus model keeps
// this session's answers.
func (s *SessionScreen) retake() tea.Cmd {
	ctx := s.deps.context()
	s.focus = s.engine.Retake(ctx, uuid.New().String())
	s.started = true
	s.genErr = ""
	s.rec = nil
	s.recWaiting = false
	return tea.Batch(s.generateNextQuestion(), tickCmd(), s.spinner.Tick)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func recPollCmd() tea.Cmd {
	return tea.Tick(recPollInterval, func(t time.Time) tea.Msg {
		return recPollMsg(t)
	})
}

package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/histquiz/internal/questiongen"
	"github.com/abhisek/histquiz/internal/router"
	sess "github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/topics"
)

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, questiongen.GenerateInput) (*questiongen.Question, error) {
	return nil, errors.New("not used")
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestion() *questiongen.Question {
	return &questiongen.Question{
		Text:        "In which year did World War I begin?",
		Options:     [4]string{"1912", "1914", "1916", "1918"},
		Correct:     2,
		Explanation: "The war began in July 1914.",
	}
}

func testScreen(maxQuestions int) *SessionScreen {
	cfg := sess.DefaultConfig()
	cfg.MaxQuestions = maxQuestions
	deps := Deps{
		Engine: sess.Deps{
			Generator: stubGenerator{},
			Planner:   sess.NewPlanner(topics.DefaultTopics(), nil, cfg),
		},
		Config: cfg,
	}
	return New(deps)
}

// started runs the init step and delivers the first question.
func started(t *testing.T, maxQuestions int) *SessionScreen {
	t.Helper()
	s := testScreen(maxQuestions)
	if s.Init() == nil {
		t.Fatal("expected init command")
	}
	s.Update(s.initSession()())
	if !s.started {
		t.Fatal("session not started")
	}
	s.Update(questionReadyMsg{Gen: s.reqGen, Question: testQuestion()})
	if s.engine.State.Phase != sess.PhaseActive {
		t.Fatalf("phase = %v, want active", s.engine.State.Phase)
	}
	return s
}

func TestSessionScreen_NoGenerator(t *testing.T) {
	s := New(Deps{})
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no command without a generator")
	}
	if !strings.Contains(s.View(100, 30), "OPENAI_API_KEY") {
		t.Error("expected configuration error")
	}
	_, cmd := s.Update(keyPress('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("any key should go back")
	}
}

func TestSessionScreen_QuestionView(t *testing.T) {
	s := started(t, 6)
	view := s.View(100, 30)
	for _, want := range []string{"World War I begin", "A)", "1914", "Q 1/6"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	st := s.Status()
	if st.Total != 6 || st.Level != "Easy" {
		t.Errorf("status = %+v", st)
	}
}

func TestSessionScreen_CorrectAnswer(t *testing.T) {
	s := started(t, 6)
	s.Update(keyPress('2'))

	st := s.engine.State
	if st.Phase != sess.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", st.Phase)
	}
	if st.Score != 1 {
		t.Errorf("score = %d, want 1", st.Score)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Correct!") {
		t.Error("feedback missing Correct!")
	}
	if !strings.Contains(view, "July 1914") {
		t.Error("feedback missing explanation")
	}
}

func TestSessionScreen_WrongAnswerShowsCorrectText(t *testing.T) {
	s := started(t, 6)
	s.Update(keyPress('a'))

	if s.engine.State.Score != 0 {
		t.Errorf("score = %d, want 0", s.engine.State.Score)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Not quite") || !strings.Contains(view, "The correct answer was: 1914") {
		t.Errorf("unexpected feedback view:\n%s", view)
	}
}

func TestSessionScreen_AdvanceRequestsNextQuestion(t *testing.T) {
	s := started(t, 6)
	s.Update(keyPress('2'))
	first := s.reqGen

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected generation command")
	}
	if s.reqGen != first+1 {
		t.Errorf("reqGen = %d, want %d", s.reqGen, first+1)
	}
	if s.engine.State.Phase != sess.PhaseLoading {
		t.Errorf("phase = %v, want loading", s.engine.State.Phase)
	}

	// A reply for the earlier request is dropped.
	s.Update(questionReadyMsg{Gen: first, Question: testQuestion()})
	if s.engine.State.Phase != sess.PhaseLoading {
		t.Error("stale question should be ignored")
	}
}

func TestSessionScreen_GenerationError(t *testing.T) {
	s := testScreen(6)
	s.Init()
	s.Update(s.initSession()())
	s.Update(questionReadyMsg{Gen: s.reqGen, Err: errors.New("rate limited")})

	if s.genErr == "" {
		t.Fatal("expected generation error")
	}
	if !strings.Contains(s.View(100, 30), "rate limited") {
		t.Error("view missing error text")
	}

	before := s.reqGen
	_, cmd := s.Update(keyPress('r'))
	if cmd == nil || s.reqGen != before+1 || s.genErr != "" {
		t.Error("retry should request a new question")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s := started(t, 6)

	s.Update(specialKey(tea.KeyEscape))
	if !s.engine.State.ShowingQuitConfirm {
		t.Fatal("esc should open the quit dialog")
	}
	s.Update(keyPress('n'))
	if s.engine.State.ShowingQuitConfirm {
		t.Fatal("n should close the quit dialog")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("quitting before any answer should go back")
	}
}

func TestSessionScreen_EndsAfterLastQuestion(t *testing.T) {
	s := started(t, 1)
	s.Update(keyPress('2'))

	if !strings.Contains(s.View(100, 30), "see your results") {
		t.Error("last feedback should point to results")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Fatal("expected sessionEndMsg after the last question")
	}

	_, cmd = s.Update(sessionEndMsg{})
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if msg.Screen.Title() != "Quiz Results" {
		t.Errorf("title = %q", msg.Screen.Title())
	}
	if s.engine.State.Phase != sess.PhaseSummary {
		t.Errorf("phase = %v, want summary", s.engine.State.Phase)
	}
}

func TestSessionScreen_Retake(t *testing.T) {
	s := started(t, 1)
	s.Update(keyPress('2'))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(sessionEndMsg{})
	oldID := s.engine.State.SessionID

	s.retaking = true
	if s.Init() == nil {
		t.Fatal("expected retake command")
	}
	if s.engine.State.SessionID == oldID {
		t.Error("retake should start a new session ID")
	}
	if s.engine.State.Answered() != 0 || s.engine.State.Phase != sess.PhaseLoading {
		t.Errorf("retake state: answered=%d phase=%v", s.engine.State.Answered(), s.engine.State.Phase)
	}
	if len(s.engine.Observations()) != 1 {
		t.Errorf("retake should keep the answer log, got %d", len(s.engine.Observations()))
	}
}

package session

import (
	"time"

	"github.com/abhisek/histquiz/internal/questiongen"
	sess "github.com/abhisek/histquiz/internal/session"
)

// sessionInitMsg is sent when the answer log is loaded and the opening
// focus is chosen.
type sessionInitMsg struct {
	Focus sess.Focus
}

// questionReadyMsg is sent when a question has been generated.
type questionReadyMsg struct {
	Gen      int
	Question *questiongen.Question
	Err      error
}

// timerTickMsg is sent every second to update the elapsed time.
type timerTickMsg time.Time

// recPollMsg checks whether the background video lookup has finished.
type recPollMsg time.Time

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}

package session

import (
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/screens/summary"
	sess "github.com/abhisek/histquiz/internal/session"
)

// summaryScreen builds the results screen. Retake reuses this screen and
// its engine.
func (s *SessionScreen) summaryScreen(sum *sess.Summary) screen.Screen {
	return summary.New(sum, summary.Options{
		Ctx:       s.deps.context(),
		Recommend: s.deps.Engine.Recommend,
		Events:    s.deps.Engine.Events,
		ReportDir: s.deps.ReportDir,
		Retake: func() screen.Screen {
			s.retaking = true
			return s
		},
	})
}

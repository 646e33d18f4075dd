package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/llm"
	"github.com/abhisek/histquiz/internal/questiongen"
	"github.com/abhisek/histquiz/internal/recommend"
	sess "github.com/abhisek/histquiz/internal/session"
)

const askVideoWait = 10 * time.Second

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Take the quiz in plain text (no TUI)",
	Long: `Run one adaptive quiz on stdin/stdout. Answer with 1-4 or A-D.
Answers, recommendations and progress are recorded like in the TUI.`,
	RunE: runAsk,
}

func init() {
	addQuizFlags(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := buildServices(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	deps := svc.quiz.Engine
	if deps.Generator == nil {
		return llm.ErrNoProvider
	}
	deps.Planner = svc.planner()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	e := sess.NewEngine(deps, svc.quiz.Config, uuid.New().String())
	f := e.Begin(ctx)
	fmt.Fprintf(out, "Starting with %s at %s level.\n\n", f.Topic.Name, f.Level)

	quit := false
	for !quit {
		q, err := nextQuestion(ctx, e, svc.quiz.QuestionTimeout)
		if err != nil {
			fmt.Fprintf(out, "Couldn't write the next question: %v\n", err)
			break
		}
		printQuestion(out, e.State, q)

		choice, ok := readChoice(out, in, q)
		if !ok {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}

		correct, err := e.Answer(ctx, choice)
		if err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Not quite.\033[0m The answer was: %s\n", q.CorrectText())
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "%s\n", q.Explanation)
		}
		if res := waitForVideo(deps.Recommend); res != nil && res.Pick != nil {
			fmt.Fprintf(out, "Watch next: %s\n  %s\n", res.Pick.Video.Title, res.Pick.Video.URL)
		}
		fmt.Fprintln(out)

		quit = !e.Advance(ctx)
		switch e.State.LastLevelChange {
		case 1:
			fmt.Fprintf(out, "Level up! Moving to %s.\n\n", e.State.Level)
		case -1:
			fmt.Fprintf(out, "Let's try %s questions for a bit.\n\n", e.State.Level)
		}
	}

	if e.State.Answered() == 0 {
		return nil
	}
	sum := e.Finish(ctx)
	var final *recommend.FinalResult
	if deps.Recommend != nil {
		fmt.Fprintln(out, "Finding videos for you...")
		final = deps.Recommend.Final(ctx, sum.SessionID, sum.TotalCorrect, sum.TotalQuestions)
	}
	printSummary(out, sum, final)
	return nil
}

func nextQuestion(ctx context.Context, e *sess.Engine, timeout time.Duration) (*questiongen.Question, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return e.NextQuestion(ctx)
}

func printQuestion(out io.Writer, st *sess.SessionState, q *questiongen.Question) {
	fmt.Fprintf(out, "── Question %d/%d · %s · %s ──\n",
		st.Answered()+1, st.Config.MaxQuestions, st.Topic.Name, st.Level)
	fmt.Fprintln(out, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %c) %s\n", 'A'+i, opt)
	}
}

// readChoice prompts until the input parses. ok is false on EOF.
func readChoice(out io.Writer, in *bufio.Scanner, q *questiongen.Question) (int, bool) {
	for {
		fmt.Fprint(out, "\nYour answer: ")
		if !in.Scan() {
			return 0, false
		}
		choice, err := questiongen.ParseChoice(q, strings.TrimSpace(in.Text()))
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		return choice, true
	}
}

func waitForVideo(svc *recommend.Service) *recommend.AnswerResult {
	if svc == nil {
		return nil
	}
	deadline := time.Now().Add(askVideoWait)
	for time.Now().Before(deadline) {
		if res, ok := svc.Consume(); ok {
			return res
		}
		time.Sleep(250 * time.Millisecond)
	}
	svc.Cancel()
	return nil
}

func printSummary(out io.Writer, sum *sess.Summary, final *recommend.FinalResult) {
	fmt.Fprintf(out, "\n── %s ──\n", sum.Band.Headline())
	fmt.Fprintf(out, "Score: %d/%d (%.0f%%)  Time: %s  Final level: %s\n",
		sum.TotalCorrect, sum.TotalQuestions, sum.Percent,
		sum.Duration.Round(time.Second), sum.FinalLevel)
	fmt.Fprintln(out, sum.Band.Feedback())

	if len(sum.TopicResults) > 0 {
		fmt.Fprintln(out, "\nBy topic:")
		for _, t := range sum.TopicResults {
			fmt.Fprintf(out, "  %-24s %d/%d\n", t.Topic, t.Correct, t.Attempted)
		}
	}

	if final == nil {
		return
	}
	var found []recommend.Recommendation
	for _, it := range final.Items {
		if it.Found() {
			found = append(found, it)
		}
	}
	if len(found) == 0 {
		fmt.Fprintln(out, "\nSearch YouTube for:")
		for _, it := range final.Items {
			fmt.Fprintf(out, "  • %s\n", it.Query)
		}
		return
	}
	fmt.Fprintln(out, "\nRecommended videos:")
	for _, it := range found {
		fmt.Fprintf(out, "  • %s\n    %s\n", it.Video.Title, it.Video.URL)
	}
}

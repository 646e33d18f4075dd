package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/recommend"
	"github.com/abhisek/histquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No quizzes finished yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-36s  %7s  %5s  %-13s  %s\n",
			"Finished", "Session", "Score", "Time", "Band", "Last topic")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, r := range sessions {
			pct := recommend.Percent(r.CorrectAnswers, r.QuestionsServed)
			dur := time.Duration(r.DurationSecs) * time.Second
			fmt.Fprintf(out, "%-19s  %-36s  %3d/%-3d  %5s  %-13s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.SessionID,
				r.CorrectAnswers, r.QuestionsServed,
				formatDuration(dur),
				recommend.BandFor(pct),
				r.Topic,
			)
		}
		return nil
	},
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}

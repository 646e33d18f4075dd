package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per topic and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		snap, err := s.SnapshotRepo().Latest(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap != nil {
			fmt.Fprintf(out, "Quizzes completed: %d\n\n", snap.Data.SessionsCompleted)
		}

		rows, err := report.Load(ctx, s.EventRepo(), "")
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintln(out, "No answers recorded yet.")
			return nil
		}
		fmt.Fprintln(out, report.RenderStats(report.Aggregate(rows)))
		return nil
	},
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the answer log",
	Long: `Export every recorded answer as CSV (topic, difficulty, answered_correct),
JSON with per-topic statistics, or a terminal table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatVal, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		sessionID, _ := cmd.Flags().GetString("session")

		f, err := report.ParseFormat(formatVal)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := report.Load(cmd.Context(), s.EventRepo(), sessionID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No answers recorded yet.")
			return nil
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			defer file.Close()
			w = file
		}

		if err := report.Write(w, f, rows, sessionID); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if outPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d answers to %s\n", len(rows), outPath)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("format", "f", "csv", "Output format: csv, json or table")
	reportCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout (e.g. "+report.DefaultFileName+")")
	reportCmd.Flags().String("session", "", "Only include one session ID")
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer histquiz release",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(30 * time.Second))

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		out := cmd.OutOrStdout()
		res, err := checker.Check(ctx, version)
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Fprintln(out, "Development build: nothing to compare against.")
			return nil
		}
		if err != nil {
			return err
		}

		if !res.UpdateAvailable {
			fmt.Fprintf(out, "Already running the latest version (%s).\n", res.CurrentVersion)
			return nil
		}
		fmt.Fprintf(out, "histquiz %s is available (you have %s).\n", res.LatestVersion, res.CurrentVersion)
		if res.ReleaseURL != "" {
			fmt.Fprintf(out, "Release notes: %s\n", res.ReleaseURL)
		}
		fmt.Fprintf(out, "\nTo install:\n  %s\n", res.InstallCommand())
		return nil
	},
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/topics"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the built-in quiz topics and levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		out := cmd.OutOrStdout()
		catalog := topics.DefaultTopics()

		fmt.Fprintf(out, "%-20s  %-20s  %s\n", "ID", "Name", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, t := range catalog {
			fmt.Fprintf(out, "%-20s  %-20s  %s\n", t.ID, t.Name, t.Description)
			if verbose {
				for _, f := range t.Focus {
					fmt.Fprintf(out, "%22s• %s\n", "", f)
				}
			}
		}

		fmt.Fprintf(out, "\nLevels:\n")
		for _, l := range topics.Levels() {
			fmt.Fprintf(out, "  %-7s %s\n", l, l.Complexity())
		}
		fmt.Fprintf(out, "\n%d topics. Any other subject can be passed to --topic.\n", len(catalog))
		return nil
	},
}

func init() {
	topicsCmd.Flags().BoolP("verbose", "v", false, "Show what each topic covers")
}

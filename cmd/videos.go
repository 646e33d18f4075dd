package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/youtube"
)

var videosCmd = &cobra.Command{
	Use:   "videos <query>",
	Short: "Search YouTube the way recommendations do",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		query := strings.Join(args, " ")

		ctx := cmd.Context()
		searcher, err := newSearcher(ctx, appCfg.Video)
		if err != nil {
			return err
		}
		if searcher == nil {
			return errors.New("video lookups are disabled (HISTQUIZ_NO_VIDEOS)")
		}

		ctx, cancel := context.WithTimeout(ctx, appCfg.Video.Timeout)
		defer cancel()

		videos, err := searcher.Search(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("%s search: %w", youtube.Name(searcher), err)
		}

		out := cmd.OutOrStdout()
		if len(videos) == 0 {
			fmt.Fprintln(out, "No videos found.")
			return nil
		}
		for i, v := range videos {
			fmt.Fprintf(out, "%d. %s\n", i+1, v.Title)
			if v.Channel != "" {
				fmt.Fprintf(out, "   %s\n", v.Channel)
			}
			fmt.Fprintf(out, "   %s\n", v.URL)
		}
		return nil
	},
}

func init() {
	videosCmd.Flags().IntP("limit", "n", 5, "Number of videos to show")
}

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/app"
	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/screens/home"
	"github.com/abhisek/histquiz/internal/selfupdate"
	"github.com/abhisek/histquiz/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	addQuizFlags(playCmd)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	closeLog, err := logToFile(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, cleanup, err := buildServices(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Run(cmd.Context(), app.Options{
		Home: home.Options{
			Quiz:    svc.quiz,
			Catalog: svc.catalog,
			Topic:   svc.topic,
		},
		Version: version,
		Checker: selfupdate.NewChecker(selfupdate.WithTimeout(5 * time.Second)),
	})
}

// logToFile points the context logger at the log file, since the TUI owns
// the terminal.
func logToFile(cmd *cobra.Command) (func(), error) {
	path := appCfg.LogFile
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = filepath.Join(dir, "histquiz.log")
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.New(appCfg.Name, appCfg.Env, appCfg.LogLevel, f)
	cmd.SetContext(logging.IntoContext(cmd.Context(), logger))
	return func() { f.Close() }, nil
}

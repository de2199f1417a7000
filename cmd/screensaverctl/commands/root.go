package commands

import (
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smartscreen/backend/internal/app"
	"github.com/smartscreen/backend/internal/config"
)

var (
	envFile  string
	logLevel string
	deps     *app.App
)

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "screensaverctl",
		Short:        "Inspect screensaver content, routines and location from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			cfg.SetupLogging()
			logrus.SetOutput(cmd.ErrOrStderr())

			deps, err = app.New(cmd.Context(), cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if deps != nil {
				deps.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(composeCmd(), locationCmd(), routinesCmd())
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Package cmd wires the deskamp CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danfragoso/deskamp/internal/config"
	"github.com/danfragoso/deskamp/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "deskamp",
	Short: "Deskamp is a local music library and playback engine.",
	Long: `Deskamp indexes folders of audio files, extracts their metadata and
album artwork, and plays them with queue, shuffle and repeat control.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.Init(logger.Config{
			Level:      cfg.LogLevel,
			OutputPath: cfg.LogPath,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		})
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

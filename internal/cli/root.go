// Package cli implements the automute command line.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagHeadphones bool
	flagLogLevel   string
	flagPrettyLog  bool
	flagWelcome    bool
)

var rootCmd = &cobra.Command{
	Use:   "automute",
	Short: "Mute your Mac when headphones disconnect",
	Long: `AutoMute sits in the menu bar and mutes system audio when headphones are
disconnected, and optionally on sleep or lock.

Running automute without a subcommand starts the menu bar app.`,
	SilenceUsage: true,
	RunE:         runTray,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&flagHeadphones, "headphones", false, "Start with headphones connected")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides settings.yaml)")
	rootCmd.Flags().BoolVar(&flagPrettyLog, "pretty-log", false, "Human-readable log output")
	rootCmd.Flags().BoolVar(&flagWelcome, "welcome", false, "Show the onboarding popups on start")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(headphonesCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(versionCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/automute/automute/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show effective settings",
	Long: `Show the settings AutoMute starts with: settings.yaml merged over defaults.

Edit settings.yaml while AutoMute runs to change preferences; the running
app picks up the change. Clearing hide_menu_bar_icon brings a hidden icon back.`,
	RunE: runSettings,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GlobalSettingsFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsPathCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/automute/automute/internal/app"
	"github.com/automute/automute/internal/config"
	"github.com/automute/automute/internal/logging"
	"github.com/automute/automute/internal/menubar"
	"github.com/automute/automute/internal/models"
	"github.com/automute/automute/internal/popup"
	"github.com/automute/automute/internal/tray"
	"github.com/automute/automute/internal/watcher"
)

// runTray runs the menu bar app on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runTray(cmd *cobra.Command, args []string) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check instance status: %w", err)
	}
	if running {
		return fmt.Errorf("AutoMute is already running (PID %d)", info.PID)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	instance := models.NewInstanceInfo(os.Getpid())
	configureLogging(settings, instance)
	log := logging.WithComponent("cli")

	if err := config.SaveInstanceInfo(instance); err != nil {
		return fmt.Errorf("failed to write instance info: %w", err)
	}

	delegate := app.NewDelegate(settings.Preferences,
		app.WithNotifier(app.DesktopNotifier{}),
		app.WithQuit(tray.Quit),
	)

	var w *watcher.Watcher

	onReady := func() {
		ctrl := menubar.New(delegate, tray.New(), popup.New(), flagHeadphones,
			menubar.WithDisableHours(settings.DisableOptions...))
		delegate.OnChange(ctrl.Refresh)

		if delegate.IsSetToHideMenuBarIcon() {
			ctrl.ForceRemoveFromMenuBar()
		}

		log.Info().
			Int("pid", instance.PID).
			Bool("headphones", flagHeadphones).
			Msg("AutoMute started")

		if flagWelcome {
			go func() {
				ctrl.ShowWelcomePopup()
				if !delegate.IsSetToLaunchAtLogin() {
					ctrl.ShowLaunchAtLoginPopup()
				}
			}()
		}

		w, err = watcher.NewSettings()
		if err != nil {
			log.Warn().Err(err).Msg("Settings hot reload unavailable")
		} else if err := w.Start(); err != nil {
			log.Warn().Err(err).Msg("Settings hot reload unavailable")
		} else {
			go reloadOnChange(w, delegate, ctrl, instance, log)
		}

		go watchHeadphoneSignals(ctrl, log)

		// Quit the tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Info().Str("signal", sig.String()).Msg("Shutting down")
			delegate.Quit()
		}()
	}

	onExit := func() {
		if w != nil {
			w.Stop()
		}
		if err := config.RemoveInstanceInfo(); err != nil {
			log.Warn().Err(err).Msg("Failed to remove instance info")
		}
		log.Info().Msg("AutoMute stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(onReady, onExit)
	return nil
}

func configureLogging(settings *models.Settings, instance *models.InstanceInfo) {
	level := flagLogLevel
	if level == "" {
		level = settings.LogLevel
	}
	logging.Configure(logging.Config{
		Level:    level,
		Pretty:   flagPrettyLog,
		Instance: instance.InstanceID,
	})
}

// reloadOnChange applies settings.yaml edits to the running app. Clearing
// hide_menu_bar_icon is the way back into the menu bar after the icon was
// hidden.
func reloadOnChange(w *watcher.Watcher, delegate *app.Delegate, ctrl *menubar.Controller, instance *models.InstanceInfo, log zerolog.Logger) {
	for ev := range w.Events() {
		settings, err := config.LoadSettings()
		if err != nil {
			log.Warn().Err(err).Str("path", ev.Path).Msg("Ignoring invalid settings")
			continue
		}
		if flagLogLevel == "" {
			configureLogging(settings, instance)
		}

		delegate.Apply(settings.Preferences)
		switch {
		case settings.Preferences.HideMenuBarIcon && ctrl.Visible():
			ctrl.ForceRemoveFromMenuBar()
		case !settings.Preferences.HideMenuBarIcon && !ctrl.Visible():
			ctrl.Show()
		}
	}
}

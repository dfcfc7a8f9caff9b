package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/automute/automute/internal/config"
	"github.com/automute/automute/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether AutoMute is running",
	RunE:  runStatus,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running AutoMute",
	RunE:  runStop,
}

var headphonesCmd = &cobra.Command{
	Use:       "headphones <connected|disconnected>",
	Short:     "Report headphone state to the running AutoMute",
	Long:      `Report headphone state so the menu bar icon follows it. Intended for external event hooks.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"connected", "disconnected"},
	RunE:      runHeadphones,
}

// runningInstance returns the live instance or nil.
func runningInstance() (*models.InstanceInfo, error) {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check instance status: %w", err)
	}
	if !running {
		return nil, nil
	}
	return info, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	info, err := runningInstance()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if info == nil {
		fmt.Fprintln(out, styleHint.Render("AutoMute is not running."))
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)
	fmt.Fprintln(out, styleSuccess.Render("AutoMute is running."))
	fmt.Fprintf(out, "  %s %d\n", styleLabel.Render("PID:     "), info.PID)
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Instance:"), info.InstanceID)
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Uptime:  "), uptime)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	info, err := runningInstance()
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "AutoMute is not running.")
		return nil
	}

	if err := signalInstance(info, syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsInstanceRunning()
		if err == nil && !stillRunning {
			fmt.Fprintln(cmd.OutOrStdout(), "AutoMute stopped.")
			return nil
		}
	}

	return fmt.Errorf("AutoMute did not stop within timeout")
}

func runHeadphones(cmd *cobra.Command, args []string) error {
	var connected bool
	switch args[0] {
	case "connected", "on":
		connected = true
	case "disconnected", "off":
		connected = false
	default:
		return fmt.Errorf("invalid headphone state %q (expected connected or disconnected)", args[0])
	}

	sig, ok := headphoneSignal(connected)
	if !ok {
		return fmt.Errorf("headphone reporting is not supported on this platform")
	}

	info, err := runningInstance()
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("AutoMute is not running")
	}
	return signalInstance(info, sig)
}

func signalInstance(info *models.InstanceInfo, sig os.Signal) error {
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", info.PID, err)
	}
	return process.Signal(sig)
}

//go:build !windows

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/automute/automute/internal/menubar"
)

// watchHeadphoneSignals lets external event sources report headphone state:
// SIGUSR1 means connected, SIGUSR2 disconnected.
func watchHeadphoneSignals(ctrl *menubar.Controller, log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1, syscall.SIGUSR2)
	for sig := range sigCh {
		connected := sig == syscall.SIGUSR1
		log.Debug().Bool("headphones", connected).Msg("Headphone state reported")
		ctrl.UpdateMenuIcon(connected)
	}
}

func headphoneSignal(connected bool) (os.Signal, bool) {
	if connected {
		return syscall.SIGUSR1, true
	}
	return syscall.SIGUSR2, true
}

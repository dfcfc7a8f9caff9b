package cli

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/automute/automute/internal/menubar"
)

func watchHeadphoneSignals(ctrl *menubar.Controller, log zerolog.Logger) {}

func headphoneSignal(connected bool) (os.Signal, bool) {
	return nil, false
}

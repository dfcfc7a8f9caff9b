package app

import (
	"github.com/gen2brain/beeep"
)

// DesktopNotifier posts native desktop notifications.
type DesktopNotifier struct{}

// Notify implements Notifier.
func (DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

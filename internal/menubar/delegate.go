// Package menubar implements the AutoMute status-bar controller and the
// delegate contract it drives.
package menubar

// Delegate owns every preference and muting decision. The controller reads
// it before each render and forwards menu selections to it; it never caches
// delegate values across renders.
type Delegate interface {
	// DisableMutingFor suspends automatic muting for the given number of
	// hours. The delegate owns the re-enable timer.
	DisableMutingFor(hours int)
	EnableMuting()
	Quit()

	IsSetToLaunchAtLogin() bool
	SetLaunchAtLogin(launchAtLogin bool)

	IsSetToMuteOnSleep() bool
	SetMuteOnSleep(muteOnSleep bool)

	IsSetToMuteOnLock() bool
	SetMuteOnLock(muteOnLock bool)

	IsSetToMuteOnHeadphones() bool
	SetMuteOnHeadphones(muteOnHeadphones bool)

	IsSetToShowMuteNotifications() bool
	ToggleMuteNotifications()

	// IsSetToHideMenuBarIcon is read right after ToggleHideMenuBarIcon so the
	// controller can take itself out of the menu bar.
	IsSetToHideMenuBarIcon() bool
	ToggleHideMenuBarIcon()

	IsSetToRestoreOnWake() bool
	SetRestoreOnWake(restoreOnWake bool)

	IsSetToRestoreOnUnlock() bool
	SetRestoreOnUnlock(restoreOnUnlock bool)
}

// MuteStateReporter is an optional Delegate capability. When present, the
// icon shows whether automatic muting is currently suspended.
type MuteStateReporter interface {
	IsMutingEnabled() bool
}

// mutingEnabled reports the delegate's muting state, treating delegates
// without MuteStateReporter as always enabled.
func mutingEnabled(d Delegate) bool {
	if r, ok := d.(MuteStateReporter); ok {
		return r.IsMutingEnabled()
	}
	return true
}

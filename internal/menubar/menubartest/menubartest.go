// Package menubartest provides in-memory doubles for the menubar package.
package menubartest

import (
	"fmt"
	"sync"

	"github.com/automute/automute/internal/menubar"
)

// Delegate is an in-memory menubar.Delegate that records every call.
type Delegate struct {
	mu sync.Mutex

	LaunchAtLogin     bool
	MuteOnSleep       bool
	MuteOnLock        bool
	MuteOnHeadphones  bool
	MuteNotifications bool
	HideMenuBarIcon   bool
	RestoreOnWake     bool
	RestoreOnUnlock   bool
	MutingEnabled     bool

	// HideReportsTrue forces IsSetToHideMenuBarIcon to report true regardless
	// of toggles.
	HideReportsTrue bool

	calls []string
}

var (
	_ menubar.Delegate          = (*Delegate)(nil)
	_ menubar.MuteStateReporter = (*Delegate)(nil)
)

// NewDelegate returns a stub with muting enabled and every preference off.
func NewDelegate() *Delegate {
	return &Delegate{MutingEnabled: true}
}

// Calls returns the recorded mutating calls in order.
func (d *Delegate) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// ResetCalls clears the call log.
func (d *Delegate) ResetCalls() {
	d.mu.Lock()
	d.calls = nil
	d.mu.Unlock()
}

func (d *Delegate) record(call string) {
	d.calls = append(d.calls, call)
}

func (d *Delegate) DisableMutingFor(hours int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(fmt.Sprintf("DisableMutingFor(%d)", hours))
	d.MutingEnabled = false
}

func (d *Delegate) EnableMuting() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("EnableMuting")
	d.MutingEnabled = true
}

func (d *Delegate) Quit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Quit")
}

func (d *Delegate) IsMutingEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.MutingEnabled
}

func (d *Delegate) IsSetToLaunchAtLogin() bool { return d.get(&d.LaunchAtLogin) }
func (d *Delegate) SetLaunchAtLogin(v bool)    { d.set("SetLaunchAtLogin", &d.LaunchAtLogin, v) }

func (d *Delegate) IsSetToMuteOnSleep() bool { return d.get(&d.MuteOnSleep) }
func (d *Delegate) SetMuteOnSleep(v bool)    { d.set("SetMuteOnSleep", &d.MuteOnSleep, v) }

func (d *Delegate) IsSetToMuteOnLock() bool { return d.get(&d.MuteOnLock) }
func (d *Delegate) SetMuteOnLock(v bool)    { d.set("SetMuteOnLock", &d.MuteOnLock, v) }

func (d *Delegate) IsSetToMuteOnHeadphones() bool { return d.get(&d.MuteOnHeadphones) }
func (d *Delegate) SetMuteOnHeadphones(v bool)    { d.set("SetMuteOnHeadphones", &d.MuteOnHeadphones, v) }

func (d *Delegate) IsSetToRestoreOnWake() bool { return d.get(&d.RestoreOnWake) }
func (d *Delegate) SetRestoreOnWake(v bool)    { d.set("SetRestoreOnWake", &d.RestoreOnWake, v) }

func (d *Delegate) IsSetToRestoreOnUnlock() bool { return d.get(&d.RestoreOnUnlock) }
func (d *Delegate) SetRestoreOnUnlock(v bool)    { d.set("SetRestoreOnUnlock", &d.RestoreOnUnlock, v) }

func (d *Delegate) IsSetToShowMuteNotifications() bool { return d.get(&d.MuteNotifications) }
func (d *Delegate) ToggleMuteNotifications()           { d.toggle("ToggleMuteNotifications", &d.MuteNotifications) }

func (d *Delegate) IsSetToHideMenuBarIcon() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.HideMenuBarIcon || d.HideReportsTrue
}

func (d *Delegate) ToggleHideMenuBarIcon() { d.toggle("ToggleHideMenuBarIcon", &d.HideMenuBarIcon) }

func (d *Delegate) get(p *bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *p
}

func (d *Delegate) set(name string, p *bool, v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(fmt.Sprintf("%s(%t)", name, v))
	*p = v
}

func (d *Delegate) toggle(name string, p *bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(name)
	*p = !*p
}

// StatusItem is an in-memory menubar.StatusItem.
type StatusItem struct {
	mu sync.Mutex

	installed bool
	icon      menubar.Icon
	tooltip   string
	menu      []menubar.Item
	handler   func(menubar.ItemID)

	Installs int
	Removes  int
	IconSets int
	MenuSets int
}

var _ menubar.StatusItem = (*StatusItem)(nil)

// NewStatusItem returns an empty, uninstalled item.
func NewStatusItem() *StatusItem {
	return &StatusItem{icon: menubar.IconBlank}
}

func (s *StatusItem) Install() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.installed {
		return
	}
	s.installed = true
	s.Installs++
}

func (s *StatusItem) Remove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installed = false
	s.icon = menubar.IconBlank
	s.menu = nil
	s.Removes++
}

func (s *StatusItem) SetIcon(icon menubar.Icon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.icon = icon
	s.IconSets++
}

func (s *StatusItem) SetTooltip(tooltip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tooltip = tooltip
}

func (s *StatusItem) SetMenu(items []menubar.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = items
	s.MenuSets++
}

func (s *StatusItem) OnSelect(fn func(menubar.ItemID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = fn
}

// Installed reports whether the item is currently in the menu bar.
func (s *StatusItem) Installed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installed
}

// Icon returns the last icon set.
func (s *StatusItem) Icon() menubar.Icon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.icon
}

// Tooltip returns the last tooltip set.
func (s *StatusItem) Tooltip() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tooltip
}

// Menu returns the last rendered menu.
func (s *StatusItem) Menu() []menubar.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu
}

// Item looks up a rendered entry by ID.
func (s *StatusItem) Item(id menubar.ItemID) (menubar.Item, bool) {
	return menubar.FindItem(s.Menu(), id)
}

// Click simulates the user picking id.
func (s *StatusItem) Click(id menubar.ItemID) {
	s.mu.Lock()
	fn := s.handler
	s.mu.Unlock()
	if fn != nil {
		fn(id)
	}
}

// Presenter is a scripted menubar.Presenter.
type Presenter struct {
	mu sync.Mutex

	// Answer is returned from Confirm.
	Answer bool
	// Err is returned from both methods when set.
	Err error

	Informs  []string
	Confirms []string
}

var _ menubar.Presenter = (*Presenter)(nil)

func (p *Presenter) Inform(title, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Informs = append(p.Informs, title)
	return p.Err
}

func (p *Presenter) Confirm(title, message, accept, decline string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Confirms = append(p.Confirms, title)
	if p.Err != nil {
		return false, p.Err
	}
	return p.Answer, nil
}

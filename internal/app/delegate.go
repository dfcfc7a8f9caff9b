// Package app holds the AutoMute preference state behind the menu-bar
// controller.
package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/automute/automute/internal/logging"
	"github.com/automute/automute/internal/menubar"
	"github.com/automute/automute/internal/models"
)

// Notifier announces muting changes to the user.
type Notifier interface {
	Notify(title, message string) error
}

// Delegate is the in-memory menubar.Delegate. Preferences live only for the
// life of the process; Apply replaces them when settings.yaml changes.
type Delegate struct {
	log      zerolog.Logger
	notifier Notifier
	quit     func()
	now      func() time.Time
	after    func(d time.Duration, f func()) *time.Timer

	mu            sync.Mutex
	prefs         models.Preferences
	disabledUntil time.Time
	reenable      *time.Timer
	generation    int
	quitOnce      sync.Once
	listeners     []func()
}

var (
	_ menubar.Delegate          = (*Delegate)(nil)
	_ menubar.MuteStateReporter = (*Delegate)(nil)
)

// Option configures a Delegate.
type Option func(*Delegate)

// WithNotifier sets the notifier used when mute notifications are on.
func WithNotifier(n Notifier) Option {
	return func(d *Delegate) { d.notifier = n }
}

// WithQuit sets the function Quit calls. It runs at most once.
func WithQuit(fn func()) Option {
	return func(d *Delegate) { d.quit = fn }
}

// WithClock overrides time sources for tests.
func WithClock(now func() time.Time, after func(time.Duration, func()) *time.Timer) Option {
	return func(d *Delegate) {
		d.now = now
		d.after = after
	}
}

// NewDelegate creates a delegate seeded with prefs.
func NewDelegate(prefs models.Preferences, opts ...Option) *Delegate {
	d := &Delegate{
		log:   logging.WithComponent("app"),
		quit:  func() {},
		now:   time.Now,
		after: time.AfterFunc,
		prefs: prefs,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OnChange registers fn to run after any state change. Listeners run
// without the delegate lock held.
func (d *Delegate) OnChange(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// Preferences returns a snapshot of the current preferences.
func (d *Delegate) Preferences() models.Preferences {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prefs
}

// Apply replaces all preferences, e.g. after a settings reload.
func (d *Delegate) Apply(prefs models.Preferences) {
	d.mu.Lock()
	changed := d.prefs != prefs
	d.prefs = prefs
	d.mu.Unlock()

	if changed {
		d.log.Info().Msg("Preferences reloaded")
		d.changed()
	}
}

// DisabledUntil reports when muting resumes; zero when muting is enabled.
func (d *Delegate) DisabledUntil() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disabledUntil
}

func (d *Delegate) IsMutingEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disabledUntil.IsZero()
}

func (d *Delegate) DisableMutingFor(hours int) {
	if hours <= 0 {
		d.log.Warn().Int("hours", hours).Msg("Ignoring non-positive disable duration")
		return
	}
	duration := time.Duration(hours) * time.Hour

	d.mu.Lock()
	if d.reenable != nil {
		d.reenable.Stop()
	}
	until := d.now().Add(duration)
	d.disabledUntil = until
	d.generation++
	gen := d.generation
	d.reenable = d.after(duration, func() { d.expire(gen) })
	notify := d.prefs.MuteNotifications
	d.mu.Unlock()

	d.log.Info().Int("hours", hours).Time("until", until).Msg("Muting disabled")
	if notify {
		d.notify("Muting disabled", "AutoMute will resume at "+until.Format(time.Kitchen)+".")
	}
	d.changed()
}

func (d *Delegate) EnableMuting() {
	d.mu.Lock()
	wasDisabled := !d.disabledUntil.IsZero()
	d.clearDisableLocked()
	notify := d.prefs.MuteNotifications
	d.mu.Unlock()

	if !wasDisabled {
		return
	}
	d.log.Info().Msg("Muting enabled")
	if notify {
		d.notify("Muting enabled", "AutoMute is active again.")
	}
	d.changed()
}

// expire runs when the re-enable timer armed as generation gen fires.
func (d *Delegate) expire(gen int) {
	d.mu.Lock()
	if gen != d.generation || d.disabledUntil.IsZero() {
		// Superseded by a newer DisableMutingFor or EnableMuting.
		d.mu.Unlock()
		return
	}
	d.clearDisableLocked()
	notify := d.prefs.MuteNotifications
	d.mu.Unlock()

	d.log.Info().Msg("Muting re-enabled after timeout")
	if notify {
		d.notify("Muting enabled", "The muting pause has ended.")
	}
	d.changed()
}

func (d *Delegate) clearDisableLocked() {
	d.generation++
	if d.reenable != nil {
		d.reenable.Stop()
		d.reenable = nil
	}
	d.disabledUntil = time.Time{}
}

// Quit stops any pending timer and calls the quit function once.
func (d *Delegate) Quit() {
	d.quitOnce.Do(func() {
		d.mu.Lock()
		if d.reenable != nil {
			d.reenable.Stop()
		}
		d.mu.Unlock()

		d.log.Info().Msg("Quit requested")
		d.quit()
	})
}

// prefField selects one boolean preference.
type prefField func(*models.Preferences) *bool

var (
	launchAtLogin     prefField = func(p *models.Preferences) *bool { return &p.LaunchAtLogin }
	muteOnSleep       prefField = func(p *models.Preferences) *bool { return &p.MuteOnSleep }
	muteOnLock        prefField = func(p *models.Preferences) *bool { return &p.MuteOnLock }
	muteOnHeadphones  prefField = func(p *models.Preferences) *bool { return &p.MuteOnHeadphones }
	restoreOnWake     prefField = func(p *models.Preferences) *bool { return &p.RestoreOnWake }
	restoreOnUnlock   prefField = func(p *models.Preferences) *bool { return &p.RestoreOnUnlock }
	muteNotifications prefField = func(p *models.Preferences) *bool { return &p.MuteNotifications }
	hideMenuBarIcon   prefField = func(p *models.Preferences) *bool { return &p.HideMenuBarIcon }
)

func (d *Delegate) IsSetToLaunchAtLogin() bool { return d.get(launchAtLogin) }
func (d *Delegate) SetLaunchAtLogin(v bool)    { d.set("launch_at_login", launchAtLogin, v) }

func (d *Delegate) IsSetToMuteOnSleep() bool { return d.get(muteOnSleep) }
func (d *Delegate) SetMuteOnSleep(v bool)    { d.set("mute_on_sleep", muteOnSleep, v) }

func (d *Delegate) IsSetToMuteOnLock() bool { return d.get(muteOnLock) }
func (d *Delegate) SetMuteOnLock(v bool)    { d.set("mute_on_lock", muteOnLock, v) }

func (d *Delegate) IsSetToMuteOnHeadphones() bool { return d.get(muteOnHeadphones) }
func (d *Delegate) SetMuteOnHeadphones(v bool)    { d.set("mute_on_headphones", muteOnHeadphones, v) }

func (d *Delegate) IsSetToRestoreOnWake() bool { return d.get(restoreOnWake) }
func (d *Delegate) SetRestoreOnWake(v bool)    { d.set("restore_on_wake", restoreOnWake, v) }

func (d *Delegate) IsSetToRestoreOnUnlock() bool { return d.get(restoreOnUnlock) }
func (d *Delegate) SetRestoreOnUnlock(v bool)    { d.set("restore_on_unlock", restoreOnUnlock, v) }

func (d *Delegate) IsSetToShowMuteNotifications() bool { return d.get(muteNotifications) }
func (d *Delegate) ToggleMuteNotifications()           { d.toggle("mute_notifications", muteNotifications) }

func (d *Delegate) IsSetToHideMenuBarIcon() bool { return d.get(hideMenuBarIcon) }
func (d *Delegate) ToggleHideMenuBarIcon()       { d.toggle("hide_menu_bar_icon", hideMenuBarIcon) }

func (d *Delegate) get(field prefField) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *field(&d.prefs)
}

func (d *Delegate) set(name string, field prefField, v bool) {
	d.mu.Lock()
	p := field(&d.prefs)
	changed := *p != v
	*p = v
	d.mu.Unlock()

	if changed {
		d.log.Info().Bool(name, v).Msg("Preference changed")
		d.changed()
	}
}

func (d *Delegate) toggle(name string, field prefField) {
	d.mu.Lock()
	p := field(&d.prefs)
	*p = !*p
	v := *p
	d.mu.Unlock()

	d.log.Info().Bool(name, v).Msg("Preference toggled")
	d.changed()
}

func (d *Delegate) notify(title, message string) {
	if d.notifier == nil {
		return
	}
	if err := d.notifier.Notify(title, message); err != nil {
		d.log.Warn().Err(err).Msg("Failed to send notification")
	}
}

func (d *Delegate) changed() {
	d.mu.Lock()
	listeners := append([]func(){}, d.listeners...)
	d.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

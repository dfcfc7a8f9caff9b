package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automute/automute/internal/menubar"
	"github.com/automute/automute/internal/menubar/menubartest"
	"github.com/automute/automute/internal/models"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, title)
	return n.err
}

// fakeTimers captures AfterFunc callbacks so tests can fire them.
type fakeTimers struct {
	now       time.Time
	durations []time.Duration
	fns       []func()
}

func (f *fakeTimers) after(d time.Duration, fn func()) *time.Timer {
	f.durations = append(f.durations, d)
	f.fns = append(f.fns, fn)
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

func newTestDelegate(t *testing.T, prefs models.Preferences, opts ...Option) (*Delegate, *fakeTimers) {
	t.Helper()
	timers := &fakeTimers{now: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(func() time.Time { return timers.now }, timers.after)}, opts...)
	d := NewDelegate(prefs, opts...)
	d.log = zerolog.Nop()
	return d, timers
}

func TestPreferenceSettersAndGetters(t *testing.T) {
	d, _ := newTestDelegate(t, models.Preferences{})

	d.SetLaunchAtLogin(true)
	d.SetMuteOnSleep(true)
	d.SetMuteOnLock(true)
	d.SetMuteOnHeadphones(true)
	d.SetRestoreOnWake(true)
	d.SetRestoreOnUnlock(true)
	d.ToggleMuteNotifications()
	d.ToggleHideMenuBarIcon()

	assert.Equal(t, models.Preferences{
		LaunchAtLogin:     true,
		MuteOnSleep:       true,
		MuteOnLock:        true,
		MuteOnHeadphones:  true,
		RestoreOnWake:     true,
		RestoreOnUnlock:   true,
		MuteNotifications: true,
		HideMenuBarIcon:   true,
	}, d.Preferences())
	assert.True(t, d.IsSetToLaunchAtLogin())
	assert.True(t, d.IsSetToShowMuteNotifications())
	assert.True(t, d.IsSetToHideMenuBarIcon())

	d.ToggleHideMenuBarIcon()
	assert.False(t, d.IsSetToHideMenuBarIcon())
}

func TestOnChangeFiresOnlyOnChange(t *testing.T) {
	d, _ := newTestDelegate(t, models.Preferences{MuteOnSleep: true})
	calls := 0
	d.OnChange(func() { calls++ })

	d.SetMuteOnSleep(true)
	assert.Equal(t, 0, calls)

	d.SetMuteOnSleep(false)
	assert.Equal(t, 1, calls)

	d.Apply(models.Preferences{})
	assert.Equal(t, 1, calls, "identical preferences are not a change")

	d.Apply(models.Preferences{MuteOnLock: true})
	assert.Equal(t, 2, calls)
	assert.True(t, d.IsSetToMuteOnLock())
}

func TestDisableMutingForArmsReenable(t *testing.T) {
	notifier := &recordingNotifier{}
	d, timers := newTestDelegate(t, models.Preferences{MuteNotifications: true}, WithNotifier(notifier))

	d.DisableMutingFor(2)

	assert.False(t, d.IsMutingEnabled())
	assert.Equal(t, timers.now.Add(2*time.Hour), d.DisabledUntil())
	require.Len(t, timers.fns, 1)
	assert.Equal(t, 2*time.Hour, timers.durations[0])

	timers.fns[0]()

	assert.True(t, d.IsMutingEnabled())
	assert.True(t, d.DisabledUntil().IsZero())
	assert.Equal(t, []string{"Muting disabled", "Muting enabled"}, notifier.messages)
}

func TestDisableMutingForIgnoresNonPositive(t *testing.T) {
	d, timers := newTestDelegate(t, models.Preferences{})

	d.DisableMutingFor(0)
	d.DisableMutingFor(-3)

	assert.True(t, d.IsMutingEnabled())
	assert.Empty(t, timers.fns)
}

func TestStaleTimerIsIgnored(t *testing.T) {
	d, timers := newTestDelegate(t, models.Preferences{})

	d.DisableMutingFor(1)
	d.DisableMutingFor(4)
	require.Len(t, timers.fns, 2)

	timers.fns[0]()
	assert.False(t, d.IsMutingEnabled(), "first timer was superseded")

	timers.fns[1]()
	assert.True(t, d.IsMutingEnabled())
}

func TestEnableMutingCancelsPause(t *testing.T) {
	d, timers := newTestDelegate(t, models.Preferences{})
	changes := 0
	d.OnChange(func() { changes++ })

	d.EnableMuting()
	assert.Equal(t, 0, changes, "already enabled")

	d.DisableMutingFor(8)
	d.EnableMuting()
	assert.True(t, d.IsMutingEnabled())
	assert.Equal(t, 2, changes)

	timers.fns[0]()
	assert.True(t, d.IsMutingEnabled())
	assert.Equal(t, 2, changes, "cancelled timer does not notify")
}

func TestNotificationsRespectPreference(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("no notification center")}
	d, _ := newTestDelegate(t, models.Preferences{}, WithNotifier(notifier))

	d.DisableMutingFor(1)
	assert.Empty(t, notifier.messages)

	d.ToggleMuteNotifications()
	d.EnableMuting()
	assert.Equal(t, []string{"Muting enabled"}, notifier.messages)
}

func TestQuitRunsOnce(t *testing.T) {
	quits := 0
	d, _ := newTestDelegate(t, models.Preferences{}, WithQuit(func() { quits++ }))

	d.Quit()
	d.Quit()

	assert.Equal(t, 1, quits)
}

func TestDrivesController(t *testing.T) {
	d, _ := newTestDelegate(t, models.Preferences{MuteOnSleep: true})
	item := menubartest.NewStatusItem()
	ctrl := menubar.New(d, item, &menubartest.Presenter{}, false, menubar.WithLogger(zerolog.Nop()))
	d.OnChange(ctrl.Refresh)

	it, ok := item.Item(menubar.ItemMuteOnSleep)
	require.True(t, ok)
	assert.True(t, it.Checked)

	item.Click(menubar.DisableForID(1))
	assert.Equal(t, menubar.IconSpeakerDisabled, item.Icon())

	d.EnableMuting()
	assert.Equal(t, menubar.IconSpeaker, item.Icon(), "external change reaches the icon")

	item.Click(menubar.ItemHideMenuBarIcon)
	assert.False(t, ctrl.Visible())
	assert.Equal(t, 1, item.Removes)
}

package menubar_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automute/automute/internal/menubar"
	"github.com/automute/automute/internal/menubar/menubartest"
)

type fixture struct {
	delegate  *menubartest.Delegate
	item      *menubartest.StatusItem
	presenter *menubartest.Presenter
	ctrl      *menubar.Controller
}

func newFixture(t *testing.T, headphones bool, opts ...menubar.Option) *fixture {
	t.Helper()
	f := &fixture{
		delegate:  menubartest.NewDelegate(),
		item:      menubartest.NewStatusItem(),
		presenter: &menubartest.Presenter{},
	}
	opts = append([]menubar.Option{menubar.WithLogger(zerolog.Nop())}, opts...)
	f.ctrl = menubar.New(f.delegate, f.item, f.presenter, headphones, opts...)
	return f
}

func (f *fixture) menuItem(t *testing.T, id menubar.ItemID) menubar.Item {
	t.Helper()
	it, ok := f.item.Item(id)
	require.True(t, ok, "menu item %s not rendered", id)
	return it
}

func TestNewInstallsAndRenders(t *testing.T) {
	f := newFixture(t, false)

	assert.True(t, f.item.Installed())
	assert.True(t, f.ctrl.Visible())
	assert.Equal(t, 1, f.item.Installs)
	assert.Equal(t, menubar.IconSpeaker, f.item.Icon())
	assert.NotEmpty(t, f.item.Menu())
	assert.Empty(t, f.delegate.Calls(), "construction must not mutate the delegate")
}

func TestNewWithHeadphonesShowsHeadphonesIcon(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, menubar.IconHeadphones, f.item.Icon())
	assert.Equal(t, menubar.IconHeadphones, f.ctrl.Icon())
	assert.Contains(t, f.item.Tooltip(), "headphones connected")
}

func TestNewPanicsOnNilCollaborators(t *testing.T) {
	item := menubartest.NewStatusItem()
	p := &menubartest.Presenter{}
	d := menubartest.NewDelegate()

	assert.Panics(t, func() { menubar.New(nil, item, p, false) })
	assert.Panics(t, func() { menubar.New(d, nil, p, false) })
	assert.Panics(t, func() { menubar.New(d, item, nil, false) })
}

func TestPreferenceRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   menubar.ItemID
		set  func(d *menubartest.Delegate, v bool)
	}{
		{"launch at login", menubar.ItemLaunchAtLogin, (*menubartest.Delegate).SetLaunchAtLogin},
		{"mute on sleep", menubar.ItemMuteOnSleep, (*menubartest.Delegate).SetMuteOnSleep},
		{"mute on lock", menubar.ItemMuteOnLock, (*menubartest.Delegate).SetMuteOnLock},
		{"mute on headphones", menubar.ItemMuteOnHeadphones, (*menubartest.Delegate).SetMuteOnHeadphones},
		{"restore on wake", menubar.ItemRestoreOnWake, (*menubartest.Delegate).SetRestoreOnWake},
		{"restore on unlock", menubar.ItemRestoreOnUnlock, (*menubartest.Delegate).SetRestoreOnUnlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)

			tt.set(f.delegate, true)
			f.ctrl.MenuWillOpen()
			assert.True(t, f.menuItem(t, tt.id).Checked)

			tt.set(f.delegate, false)
			f.ctrl.MenuWillOpen()
			assert.False(t, f.menuItem(t, tt.id).Checked)
		})
	}
}

func TestToggleOnlyPreferencesRender(t *testing.T) {
	f := newFixture(t, false)

	f.delegate.MuteNotifications = true
	f.ctrl.Refresh()
	assert.True(t, f.menuItem(t, menubar.ItemMuteNotifications).Checked)
	assert.False(t, f.menuItem(t, menubar.ItemHideMenuBarIcon).Checked)
}

func TestSelectDispatch(t *testing.T) {
	tests := []struct {
		id   menubar.ItemID
		want []string
	}{
		{menubar.ItemEnableMuting, []string{"EnableMuting"}},
		{menubar.ItemMuteOnSleep, []string{"SetMuteOnSleep(true)"}},
		{menubar.ItemMuteOnLock, []string{"SetMuteOnLock(true)"}},
		{menubar.ItemMuteOnHeadphones, []string{"SetMuteOnHeadphones(true)"}},
		{menubar.ItemRestoreOnWake, []string{"SetRestoreOnWake(true)"}},
		{menubar.ItemRestoreOnUnlock, []string{"SetRestoreOnUnlock(true)"}},
		{menubar.ItemLaunchAtLogin, []string{"SetLaunchAtLogin(true)"}},
		{menubar.ItemMuteNotifications, []string{"ToggleMuteNotifications"}},
		{menubar.ItemHideMenuBarIcon, []string{"ToggleHideMenuBarIcon"}},
		{menubar.DisableForID(4), []string{"DisableMutingFor(4)"}},
		{menubar.ItemQuit, []string{"Quit"}},
		{menubar.ItemAbout, nil},
		{menubar.ItemStatus, nil},
		{"disable-for-0h", nil},
		{"bogus", nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			f := newFixture(t, false)
			f.item.Click(tt.id)
			assert.Equal(t, tt.want, f.delegate.Calls())
		})
	}
}

func TestSelectReadsStateAtClickTime(t *testing.T) {
	f := newFixture(t, false)

	f.delegate.MuteOnLock = true
	f.item.Click(menubar.ItemMuteOnLock)

	assert.Equal(t, []string{"SetMuteOnLock(false)"}, f.delegate.Calls())
	assert.False(t, f.menuItem(t, menubar.ItemMuteOnLock).Checked)
}

func TestDisableMutingSwitchesIconAndMenu(t *testing.T) {
	f := newFixture(t, true)

	f.item.Click(menubar.DisableForID(2))

	assert.Equal(t, menubar.IconHeadphonesDisabled, f.item.Icon())
	assert.Equal(t, "Muting disabled", f.menuItem(t, menubar.ItemStatus).Title)
	assert.False(t, f.menuItem(t, menubar.ItemEnableMuting).Disabled)
	assert.True(t, f.menuItem(t, menubar.ItemDisableMuting).Disabled)

	f.item.Click(menubar.ItemEnableMuting)

	assert.Equal(t, menubar.IconHeadphones, f.item.Icon())
	assert.Equal(t, "Muting enabled", f.menuItem(t, menubar.ItemStatus).Title)
	assert.True(t, f.menuItem(t, menubar.ItemEnableMuting).Disabled)
}

func TestWithDisableHours(t *testing.T) {
	f := newFixture(t, false, menubar.WithDisableHours(3, 0, -1, 12))

	disable := f.menuItem(t, menubar.ItemDisableMuting)
	require.Len(t, disable.Children, 2)
	assert.Equal(t, menubar.DisableForID(3), disable.Children[0].ID)
	assert.Equal(t, "For 12 Hours", disable.Children[1].Title)
}

func TestUpdateMenuIconLastCallWins(t *testing.T) {
	f := newFixture(t, false)

	f.ctrl.UpdateMenuIcon(true)
	assert.Equal(t, menubar.IconHeadphones, f.item.Icon())

	f.ctrl.UpdateMenuIcon(false)
	assert.Equal(t, menubar.IconSpeaker, f.item.Icon())
	assert.Equal(t, menubar.IconSpeaker, f.ctrl.Icon())
}

func TestUpdateMenuIconSkipsUnchangedVariant(t *testing.T) {
	f := newFixture(t, false)
	before := f.item.IconSets

	for i := 0; i < 5; i++ {
		f.ctrl.UpdateMenuIcon(false)
	}

	assert.Equal(t, before, f.item.IconSets)
}

func TestForceRemoveKeepsItemAbsentUntilShow(t *testing.T) {
	f := newFixture(t, false)

	f.ctrl.ForceRemoveFromMenuBar()
	require.False(t, f.item.Installed())
	require.False(t, f.ctrl.Visible())
	assert.Equal(t, menubar.IconBlank, f.ctrl.Icon())

	assert.NotPanics(t, func() {
		f.ctrl.UpdateMenuIcon(true)
		f.ctrl.Refresh()
		f.ctrl.MenuWillOpen()
		f.ctrl.ForceRemoveFromMenuBar()
	})
	assert.False(t, f.item.Installed())
	assert.Equal(t, 1, f.item.Installs)
	assert.Equal(t, 1, f.item.Removes)
	assert.Empty(t, f.item.Menu())

	f.ctrl.Show()
	assert.True(t, f.item.Installed())
	assert.Equal(t, 2, f.item.Installs)
	assert.Equal(t, menubar.IconHeadphones, f.item.Icon(), "headphone state recorded while hidden")
	assert.NotEmpty(t, f.item.Menu())
}

func TestToggleHideRemovesExactlyOnce(t *testing.T) {
	f := newFixture(t, false)
	f.delegate.HideReportsTrue = true

	f.item.Click(menubar.ItemHideMenuBarIcon)

	assert.Equal(t, 1, f.item.Removes)
	assert.False(t, f.ctrl.Visible())
	assert.Equal(t, []string{"ToggleHideMenuBarIcon"}, f.delegate.Calls())
}

func TestToggleHideOffKeepsItem(t *testing.T) {
	f := newFixture(t, false)
	f.delegate.HideMenuBarIcon = true

	f.item.Click(menubar.ItemHideMenuBarIcon)

	assert.Zero(t, f.item.Removes)
	assert.True(t, f.ctrl.Visible())
}

func TestPopupsAreRepeatableAndLeaveDelegateAlone(t *testing.T) {
	f := newFixture(t, false)

	for i := 0; i < 3; i++ {
		f.ctrl.ShowWelcomePopup()
		f.ctrl.ShowLaunchAtLoginPopup()
	}

	assert.Len(t, f.presenter.Informs, 3)
	assert.Len(t, f.presenter.Confirms, 3)
	assert.Empty(t, f.delegate.Calls())
}

func TestLaunchAtLoginPopupAccepted(t *testing.T) {
	f := newFixture(t, false)
	f.presenter.Answer = true

	f.ctrl.ShowLaunchAtLoginPopup()

	assert.Equal(t, []string{"SetLaunchAtLogin(true)"}, f.delegate.Calls())
	assert.True(t, f.menuItem(t, menubar.ItemLaunchAtLogin).Checked)
}

func TestPopupErrorsAreSwallowed(t *testing.T) {
	f := newFixture(t, false)
	f.presenter.Err = errors.New("osascript failed")
	f.presenter.Answer = true

	assert.NotPanics(t, func() {
		f.ctrl.ShowWelcomePopup()
		f.ctrl.ShowLaunchAtLoginPopup()
	})
	assert.Empty(t, f.delegate.Calls())
}

func TestAboutShowsWelcome(t *testing.T) {
	f := newFixture(t, false)

	f.item.Click(menubar.ItemAbout)

	assert.Equal(t, []string{"Welcome to AutoMute"}, f.presenter.Informs)
}

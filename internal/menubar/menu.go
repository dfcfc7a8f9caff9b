package menubar

import (
	"fmt"
	"strconv"
	"strings"
)

// ItemID identifies a menu entry across renders.
type ItemID string

// Menu item IDs.
const (
	ItemStatus            ItemID = "status"
	ItemDisableMuting     ItemID = "disable-muting"
	ItemEnableMuting      ItemID = "enable-muting"
	ItemMuteOnSleep       ItemID = "mute-on-sleep"
	ItemMuteOnLock        ItemID = "mute-on-lock"
	ItemMuteOnHeadphones  ItemID = "mute-on-headphones"
	ItemRestoreOnWake     ItemID = "restore-on-wake"
	ItemRestoreOnUnlock   ItemID = "restore-on-unlock"
	ItemMuteNotifications ItemID = "mute-notifications"
	ItemHideMenuBarIcon   ItemID = "hide-menu-bar-icon"
	ItemLaunchAtLogin     ItemID = "launch-at-login"
	ItemAbout             ItemID = "about"
	ItemQuit              ItemID = "quit"
)

const (
	disableForPrefix = "disable-for-"
	disableForSuffix = "h"
	separatorPrefix  = "separator-"
)

// DefaultDisableHours are the durations offered under "Disable Muting".
var DefaultDisableHours = []int{1, 2, 4, 8}

// Item is one menu entry. Separators carry no title and are never selectable.
type Item struct {
	ID        ItemID
	Title     string
	Tooltip   string
	Checkable bool
	Checked   bool
	Disabled  bool
	Separator bool
	Children  []Item
}

// DisableForID returns the ID of the "disable for N hours" entry.
func DisableForID(hours int) ItemID {
	return ItemID(disableForPrefix + strconv.Itoa(hours) + disableForSuffix)
}

// disableHours extracts the hour count from a DisableForID value.
func disableHours(id ItemID) (int, bool) {
	s, ok := strings.CutPrefix(string(id), disableForPrefix)
	if !ok {
		return 0, false
	}
	s, ok = strings.CutSuffix(s, disableForSuffix)
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(s)
	if err != nil || hours <= 0 {
		return 0, false
	}
	return hours, true
}

func separator(n int) Item {
	return Item{ID: ItemID(separatorPrefix + strconv.Itoa(n)), Separator: true}
}

func checkbox(id ItemID, title string, checked bool) Item {
	return Item{ID: id, Title: title, Checkable: true, Checked: checked}
}

// buildMenu reads every delegate getter once and lays out the menu.
func buildMenu(d Delegate, hours []int) []Item {
	muting := mutingEnabled(d)
	muteOnSleep := d.IsSetToMuteOnSleep()
	muteOnLock := d.IsSetToMuteOnLock()

	status := "Muting enabled"
	if !muting {
		status = "Muting disabled"
	}

	disable := Item{ID: ItemDisableMuting, Title: "Disable Muting", Disabled: !muting}
	for _, h := range hours {
		disable.Children = append(disable.Children, Item{
			ID:    DisableForID(h),
			Title: hoursTitle(h),
		})
	}

	restoreOnWake := checkbox(ItemRestoreOnWake, "Restore on Wake", d.IsSetToRestoreOnWake())
	restoreOnWake.Disabled = !muteOnSleep
	restoreOnUnlock := checkbox(ItemRestoreOnUnlock, "Restore on Unlock", d.IsSetToRestoreOnUnlock())
	restoreOnUnlock.Disabled = !muteOnLock

	return []Item{
		{ID: ItemStatus, Title: status, Disabled: true},
		disable,
		{ID: ItemEnableMuting, Title: "Enable Muting", Disabled: muting},
		separator(1),
		checkbox(ItemMuteOnSleep, "Mute on Sleep", muteOnSleep),
		checkbox(ItemMuteOnLock, "Mute on Lock", muteOnLock),
		checkbox(ItemMuteOnHeadphones, "Mute on Headphones Disconnect", d.IsSetToMuteOnHeadphones()),
		separator(2),
		restoreOnWake,
		restoreOnUnlock,
		separator(3),
		checkbox(ItemMuteNotifications, "Show Mute Notifications", d.IsSetToShowMuteNotifications()),
		checkbox(ItemHideMenuBarIcon, "Hide Menu Bar Icon", d.IsSetToHideMenuBarIcon()),
		checkbox(ItemLaunchAtLogin, "Launch at Login", d.IsSetToLaunchAtLogin()),
		separator(4),
		{ID: ItemAbout, Title: "About AutoMute"},
		{ID: ItemQuit, Title: "Quit AutoMute"},
	}
}

func hoursTitle(h int) string {
	if h == 1 {
		return "For 1 Hour"
	}
	return fmt.Sprintf("For %d Hours", h)
}

// FindItem searches items and their children for id.
func FindItem(items []Item, id ItemID) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
		if child, ok := FindItem(it.Children, id); ok {
			return child, true
		}
	}
	return Item{}, false
}

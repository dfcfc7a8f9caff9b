// Package tray renders a menubar.StatusItem with getlantern/systray.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog"

	"github.com/automute/automute/internal/logging"
	"github.com/automute/automute/internal/menubar"
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onReady is called once the tray can accept items; onExit when it shuts down.
func Run(onReady, onExit func()) {
	systray.Run(onReady, onExit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

// Item is the process's single systray status item.
//
// systray cannot delete menu entries or the status item itself, so entries
// are allocated the first time an ID is seen and afterwards only updated.
// Remove hides every entry and blanks the icon.
type Item struct {
	log zerolog.Logger

	mu        sync.Mutex
	entries   map[menubar.ItemID]*systray.MenuItem
	order     []menubar.ItemID
	handler   func(menubar.ItemID)
	installed bool
	icon      menubar.Icon
	tooltip   string
}

var _ menubar.StatusItem = (*Item)(nil)

// New returns an Item. Call it only after the tray is ready.
func New() *Item {
	return &Item{
		log:     logging.WithComponent("tray"),
		entries: make(map[menubar.ItemID]*systray.MenuItem),
		icon:    menubar.IconBlank,
	}
}

func (t *Item) Install() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.installed {
		return
	}
	t.installed = true
	for _, id := range t.order {
		t.entries[id].Show()
	}
	systray.SetTemplateIcon(t.icon.PNG(), t.icon.PNG())
	systray.SetTooltip(t.tooltip)
}

func (t *Item) Remove() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.installed = false
	for _, id := range t.order {
		t.entries[id].Hide()
	}
	blank := menubar.IconBlank.PNG()
	systray.SetTemplateIcon(blank, blank)
	systray.SetTitle("")
	systray.SetTooltip("")
}

func (t *Item) SetIcon(icon menubar.Icon) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.icon = icon
	if t.installed {
		systray.SetTemplateIcon(icon.PNG(), icon.PNG())
	}
}

func (t *Item) SetTooltip(tooltip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tooltip = tooltip
	if t.installed {
		systray.SetTooltip(tooltip)
	}
}

func (t *Item) OnSelect(fn func(menubar.ItemID)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = fn
}

func (t *Item) SetMenu(items []menubar.Item) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, it := range items {
		if it.Separator {
			if _, ok := t.entries[it.ID]; !ok {
				systray.AddSeparator()
				// Separators have no handle; mark the ID as allocated.
				t.entries[it.ID] = nil
			}
			continue
		}
		mi := t.entry(nil, it)
		for _, child := range it.Children {
			t.entry(mi, child)
		}
	}
}

// entry returns the systray item for it, allocating it under parent (or at
// top level) on first use, and applies the current state.
func (t *Item) entry(parent *systray.MenuItem, it menubar.Item) *systray.MenuItem {
	mi, ok := t.entries[it.ID]
	if !ok {
		switch {
		case parent != nil:
			mi = parent.AddSubMenuItem(it.Title, it.Tooltip)
		case it.Checkable:
			mi = systray.AddMenuItemCheckbox(it.Title, it.Tooltip, it.Checked)
		default:
			mi = systray.AddMenuItem(it.Title, it.Tooltip)
		}
		t.entries[it.ID] = mi
		t.order = append(t.order, it.ID)
		go t.forward(it.ID, mi.ClickedCh)
		t.log.Debug().Str("item", string(it.ID)).Msg("Allocated menu item")
	}

	mi.SetTitle(it.Title)
	if it.Tooltip != "" {
		mi.SetTooltip(it.Tooltip)
	}
	if it.Checkable {
		if it.Checked {
			mi.Check()
		} else {
			mi.Uncheck()
		}
	}
	if it.Disabled {
		mi.Disable()
	} else {
		mi.Enable()
	}
	if t.installed {
		mi.Show()
	} else {
		mi.Hide()
	}
	return mi
}

// forward turns clicks on one entry into handler calls.
func (t *Item) forward(id menubar.ItemID, clicks <-chan struct{}) {
	for range clicks {
		t.mu.Lock()
		fn := t.handler
		t.mu.Unlock()
		if fn != nil {
			fn(id)
		}
	}
}

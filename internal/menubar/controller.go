package menubar

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/automute/automute/internal/logging"
)

const (
	welcomeTitle   = "Welcome to AutoMute"
	welcomeMessage = "AutoMute now lives in your menu bar. It mutes your Mac when headphones are " +
		"disconnected, and can also mute on sleep or lock. Use the menu bar icon to change " +
		"what triggers muting or to pause it for a while."

	launchAtLoginTitle   = "Launch AutoMute at Login?"
	launchAtLoginMessage = "AutoMute works best when it is always running. " +
		"Would you like it to start automatically when you log in?"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithDisableHours sets the durations offered under "Disable Muting".
// Non-positive values are dropped.
func WithDisableHours(hours ...int) Option {
	return func(c *Controller) {
		c.hours = c.hours[:0]
		for _, h := range hours {
			if h > 0 {
				c.hours = append(c.hours, h)
			}
		}
	}
}

// Controller owns the status item and mirrors delegate state into it.
//
// After ForceRemoveFromMenuBar the controller stays hidden until Show is
// called: UpdateMenuIcon and Refresh only record state while hidden.
type Controller struct {
	delegate  Delegate
	item      StatusItem
	presenter Presenter
	log       zerolog.Logger

	mu         sync.Mutex
	hours      []int
	headphones bool
	visible    bool
	icon       Icon
	iconSet    bool
}

// New creates the controller and installs its status item. It panics if
// any collaborator is nil.
func New(delegate Delegate, item StatusItem, presenter Presenter, headphonesConnected bool, opts ...Option) *Controller {
	if delegate == nil {
		panic("menubar: nil delegate")
	}
	if item == nil {
		panic("menubar: nil status item")
	}
	if presenter == nil {
		panic("menubar: nil presenter")
	}

	c := &Controller{
		delegate:   delegate,
		item:       item,
		presenter:  presenter,
		log:        logging.WithComponent("menubar"),
		hours:      append([]int(nil), DefaultDisableHours...),
		headphones: headphonesConnected,
		icon:       IconBlank,
	}
	for _, opt := range opts {
		opt(c)
	}

	item.OnSelect(c.Select)

	c.mu.Lock()
	c.showLocked()
	c.mu.Unlock()
	return c
}

// ShowWelcomePopup presents the onboarding dialog. It may be called any
// number of times.
func (c *Controller) ShowWelcomePopup() {
	if err := c.presenter.Inform(welcomeTitle, welcomeMessage); err != nil {
		c.log.Warn().Err(err).Msg("Failed to show welcome popup")
	}
}

// ShowLaunchAtLoginPopup asks whether to enable launch at login and tells the
// delegate only when the user accepts.
func (c *Controller) ShowLaunchAtLoginPopup() {
	ok, err := c.presenter.Confirm(launchAtLoginTitle, launchAtLoginMessage, "Launch at Login", "Not Now")
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to show launch at login popup")
		return
	}
	if !ok {
		c.log.Debug().Msg("Launch at login declined")
		return
	}
	c.delegate.SetLaunchAtLogin(true)
	c.Refresh()
}

// UpdateMenuIcon records the headphone state and swaps the icon when the
// variant changes.
func (c *Controller) UpdateMenuIcon(headphonesConnected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.headphones = headphonesConnected
	if !c.visible {
		c.log.Debug().Bool("headphones", headphonesConnected).Msg("Icon update while hidden")
		return
	}
	c.setIconLocked()
}

// ForceRemoveFromMenuBar takes the status item out of the menu bar.
func (c *Controller) ForceRemoveFromMenuBar() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.visible {
		return
	}
	c.item.Remove()
	c.visible = false
	c.icon = IconBlank
	c.iconSet = false
	c.log.Info().Msg("Removed from menu bar")
}

// Show puts the status item back after ForceRemoveFromMenuBar.
func (c *Controller) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showLocked()
}

// Refresh re-reads the delegate and re-renders the menu and icon.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked()
}

// MenuWillOpen is called by the platform right before the menu is displayed.
func (c *Controller) MenuWillOpen() {
	c.Refresh()
}

// Visible reports whether the status item is in the menu bar.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Icon returns the displayed variant, IconBlank while hidden.
func (c *Controller) Icon() Icon {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.icon
}

// Select handles a menu selection. Delegate calls are made without holding
// the controller lock so the delegate may call Refresh from its listeners.
func (c *Controller) Select(id ItemID) {
	d := c.delegate
	c.log.Debug().Str("item", string(id)).Msg("Menu item selected")

	switch id {
	case ItemEnableMuting:
		d.EnableMuting()
	case ItemMuteOnSleep:
		d.SetMuteOnSleep(!d.IsSetToMuteOnSleep())
	case ItemMuteOnLock:
		d.SetMuteOnLock(!d.IsSetToMuteOnLock())
	case ItemMuteOnHeadphones:
		d.SetMuteOnHeadphones(!d.IsSetToMuteOnHeadphones())
	case ItemRestoreOnWake:
		d.SetRestoreOnWake(!d.IsSetToRestoreOnWake())
	case ItemRestoreOnUnlock:
		d.SetRestoreOnUnlock(!d.IsSetToRestoreOnUnlock())
	case ItemLaunchAtLogin:
		d.SetLaunchAtLogin(!d.IsSetToLaunchAtLogin())
	case ItemMuteNotifications:
		d.ToggleMuteNotifications()
	case ItemHideMenuBarIcon:
		d.ToggleHideMenuBarIcon()
		if d.IsSetToHideMenuBarIcon() {
			c.ForceRemoveFromMenuBar()
			return
		}
	case ItemAbout:
		c.ShowWelcomePopup()
		return
	case ItemQuit:
		d.Quit()
		return
	default:
		hours, ok := disableHours(id)
		if !ok {
			c.log.Warn().Str("item", string(id)).Msg("Unknown menu item")
			return
		}
		d.DisableMutingFor(hours)
	}

	c.Refresh()
}

func (c *Controller) showLocked() {
	if c.visible {
		return
	}
	c.item.Install()
	c.visible = true
	c.renderLocked()
}

func (c *Controller) renderLocked() {
	if !c.visible {
		return
	}
	c.item.SetMenu(buildMenu(c.delegate, c.hours))
	c.setIconLocked()
}

func (c *Controller) setIconLocked() {
	muting := mutingEnabled(c.delegate)
	icon := IconFor(c.headphones, muting)
	if c.iconSet && icon == c.icon {
		return
	}
	c.icon = icon
	c.iconSet = true
	c.item.SetIcon(icon)
	c.item.SetTooltip(tooltip(c.headphones, muting))
	c.log.Debug().Stringer("icon", icon).Msg("Icon updated")
}

func tooltip(headphones, muting bool) string {
	state := "muting enabled"
	if !muting {
		state = "muting disabled"
	}
	output := "speakers"
	if headphones {
		output = "headphones connected"
	}
	return fmt.Sprintf("AutoMute: %s, %s", state, output)
}

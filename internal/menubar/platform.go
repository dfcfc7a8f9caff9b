package menubar

// StatusItem is the OS menu-bar entry the controller renders into.
type StatusItem interface {
	// Install places the item in the menu bar. Calling it on an installed
	// item is a no-op.
	Install()
	// Remove takes the item out of the menu bar until the next Install.
	Remove()
	SetIcon(icon Icon)
	SetTooltip(tooltip string)
	// SetMenu replaces the menu contents. Items are matched by ID, so a
	// repeated call with the same layout only updates titles and state.
	SetMenu(items []Item)
	// OnSelect registers the handler invoked when the user picks an item.
	OnSelect(fn func(id ItemID))
}

// Presenter shows modal popups.
type Presenter interface {
	Inform(title, message string) error
	// Confirm returns true when the user picks the accept button.
	Confirm(title, message, accept, decline string) (bool, error)
}

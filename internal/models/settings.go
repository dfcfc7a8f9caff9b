package models

// Preferences holds the user-facing muting switches.
type Preferences struct {
	LaunchAtLogin     bool `yaml:"launch_at_login"`
	MuteOnSleep       bool `yaml:"mute_on_sleep"`
	MuteOnLock        bool `yaml:"mute_on_lock"`
	MuteOnHeadphones  bool `yaml:"mute_on_headphones"`
	RestoreOnWake     bool `yaml:"restore_on_wake"`
	RestoreOnUnlock   bool `yaml:"restore_on_unlock"`
	MuteNotifications bool `yaml:"mute_notifications"`
	HideMenuBarIcon   bool `yaml:"hide_menu_bar_icon"`
}

// Settings represents startup configuration.
// This corresponds to ~/.automute/settings.yaml.
type Settings struct {
	Version        int         `yaml:"version"`
	Preferences    Preferences `yaml:"preferences"`
	DisableOptions []int       `yaml:"disable_options"` // hours offered under "Disable Muting"
	LogLevel       string      `yaml:"log_level"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Preferences: Preferences{
			MuteOnSleep:       true,
			MuteOnHeadphones:  true,
			MuteNotifications: true,
		},
		DisableOptions: []int{1, 2, 4, 8},
		LogLevel:       "info",
	}
}

// Normalize fills zero values a partial settings file leaves behind and
// drops non-positive disable options.
func (s *Settings) Normalize() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	valid := s.DisableOptions[:0]
	for _, h := range s.DisableOptions {
		if h > 0 {
			valid = append(valid, h)
		}
	}
	s.DisableOptions = valid
	if len(s.DisableOptions) == 0 {
		s.DisableOptions = []int{1, 2, 4, 8}
	}
}

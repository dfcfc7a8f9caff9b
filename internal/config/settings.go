package config

import (
	"github.com/automute/automute/internal/models"
)

// LoadSettings loads settings from ~/.automute/settings.yaml.
// If the file doesn't exist, returns default settings. The file is never
// written by AutoMute.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	settings.Normalize()
	return settings, nil
}

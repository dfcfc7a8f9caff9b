// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the AutoMute directory under the home directory.
	GlobalDirName = ".automute"

	// HomeEnv overrides the AutoMute directory.
	HomeEnv = "AUTOMUTE_HOME"
)

// File names
const (
	SettingsFileName = "settings.yaml"
	InstanceFileName = "instance.yaml"
)

// GlobalDir returns the path to the AutoMute directory (~/.automute/ unless
// AUTOMUTE_HOME is set).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// GlobalInstanceFile returns the path to the instance.yaml file.
func GlobalInstanceFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, InstanceFileName), nil
}

// EnsureGlobalDir creates the AutoMute directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

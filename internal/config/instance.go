package config

import (
	"os"
	"syscall"

	"github.com/automute/automute/internal/models"
)

// LoadInstanceInfo loads the running instance info from ~/.automute/instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*models.InstanceInfo, error) {
	path, err := GlobalInstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveInstanceInfo saves the instance info to ~/.automute/instance.yaml.
func SaveInstanceInfo(info *models.InstanceInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveInstanceInfo removes the instance.yaml file.
func RemoveInstanceInfo() error {
	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsInstanceRunning checks if another AutoMute process is still running.
// Returns true if instance.yaml exists and the PID is alive.
func IsInstanceRunning() (bool, *models.InstanceInfo, error) {
	info, err := LoadInstanceInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		// On Unix, FindProcess always succeeds
		return false, info, nil
	}

	// Send signal 0 to check if process exists
	if err := process.Signal(syscall.Signal(0)); err != nil {
		// Process doesn't exist, clean up stale file
		_ = RemoveInstanceInfo()
		return false, info, nil
	}

	return true, info, nil
}

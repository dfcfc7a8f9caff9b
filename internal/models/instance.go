package models

import (
	"time"

	"github.com/google/uuid"
)

// InstanceInfo describes the running AutoMute process.
// This corresponds to ~/.automute/instance.yaml.
type InstanceInfo struct {
	Version    int       `yaml:"version"`
	InstanceID string    `yaml:"instance_id"`
	PID        int       `yaml:"pid"`
	StartedAt  time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info for the given PID with a fresh ID.
func NewInstanceInfo(pid int) *InstanceInfo {
	return &InstanceInfo{
		Version:    1,
		InstanceID: uuid.NewString(),
		PID:        pid,
		StartedAt:  time.Now().UTC(),
	}
}

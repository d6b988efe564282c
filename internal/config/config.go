// Package config loads service configuration from DISKHUB_* environment
// variables.
package config

import (
	"errors"
	"os"
	"time"
)

// Config holds everything main needs to wire the service.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// DiskAPIBase overrides the cloud disk API root, mainly for tests and
	// local mocks.
	DiskAPIBase string

	// DiskToken is the owner's token, used by background jobs that run
	// outside any request. Optional; reminders are disabled without it.
	DiskToken string

	SessionSecret []byte
	SessionTTL    time.Duration

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubscriber  string
}

// ErrNoSessionSecret is returned when DISKHUB_SESSION_SECRET is unset; the
// cookie flow cannot work without it.
var ErrNoSessionSecret = errors.New("config: DISKHUB_SESSION_SECRET is required")

// Load reads the environment and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:            envOr("DISKHUB_PORT", "8080"),
		LogLevel:        envOr("DISKHUB_LOG_LEVEL", "info"),
		LogFormat:       envOr("DISKHUB_LOG_FORMAT", "text"),
		DiskAPIBase:     os.Getenv("DISKHUB_DISK_API"),
		DiskToken:       os.Getenv("DISKHUB_DISK_TOKEN"),
		SessionTTL:      30 * 24 * time.Hour,
		VAPIDPublicKey:  os.Getenv("DISKHUB_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("DISKHUB_VAPID_PRIVATE_KEY"),
		PushSubscriber:  os.Getenv("DISKHUB_PUSH_SUBSCRIBER"),
	}

	secret := os.Getenv("DISKHUB_SESSION_SECRET")
	if secret == "" {
		return Config{}, ErrNoSessionSecret
	}
	cfg.SessionSecret = []byte(secret)

	if ttl := os.Getenv("DISKHUB_SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.SessionTTL = d
		}
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

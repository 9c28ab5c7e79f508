package config

import (
	"fmt"
	"net/url"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func validate(c *Config) error {
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("log level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	if c.TabRateRPS <= 0 {
		return fmt.Errorf("tab rate must be > 0")
	}
	if c.TabRateBurst <= 0 {
		return fmt.Errorf("tab rate burst must be > 0")
	}
	if c.ScreenshotQuality < 1 || c.ScreenshotQuality > MaxScreenshotQuality {
		return fmt.Errorf("screenshot quality must be between 1 and %d", MaxScreenshotQuality)
	}
	if c.RemoteURL != "" {
		if err := validateRemoteURL(c.RemoteURL); err != nil {
			return err
		}
	}
	return nil
}

// validateRemoteURL accepts a DevTools endpoint: http(s) for the discovery
// endpoint or ws(s) for a browser websocket.
func validateRemoteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid remote URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("remote URL must use http, https, ws or wss (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("remote URL has no host: %q", raw)
	}
	return nil
}

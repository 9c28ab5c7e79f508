package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "warn"
	DefaultJSONLog           = false
	DefaultUserAgent         = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/104.0.0.0 Safari/537.36"
	DefaultTimeout           = 30 * time.Second
	DefaultRemoteURL         = "http://127.0.0.1:9222"
	DefaultBrowserHeadless   = true
	DefaultTabRateRPS        = 1.0
	DefaultTabRateBurst      = 1
	DefaultScreenshotQuality = 90
	MaxScreenshotQuality     = 100
)

// envPrefix namespaces environment overrides.
const envPrefix = "MOTORREG_"

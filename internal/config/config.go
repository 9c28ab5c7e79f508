package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Browser
	Timeout         time.Duration
	UserAgent       string
	ChromePath      string
	RemoteURL       string
	BrowserHeadless bool

	// Tab switching pace
	TabRateRPS   float64
	TabRateBurst int

	ScreenshotQuality int
}

// Default returns a Config populated with the package defaults.
func Default() *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		Timeout:           DefaultTimeout,
		UserAgent:         DefaultUserAgent,
		RemoteURL:         DefaultRemoteURL,
		BrowserHeadless:   DefaultBrowserHeadless,
		TabRateRPS:        DefaultTabRateRPS,
		TabRateBurst:      DefaultTabRateBurst,
		ScreenshotQuality: DefaultScreenshotQuality,
	}
}

// Load builds a Config by combining defaults, MOTORREG_* environment variables and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	if err := applyFlags(cfg, cmd); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := env("JSON_LOG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sJSON_LOG: %w", envPrefix, err)
		}
		cfg.JSONLog = b
	}
	if v := env("TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.Timeout = d
	}
	if v := env("USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := env("CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := env("REMOTE_URL"); v != "" {
		cfg.RemoteURL = v
	}
	if v := env("HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sHEADLESS: %w", envPrefix, err)
		}
		cfg.BrowserHeadless = b
	}
	if v := env("TAB_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sTAB_RATE: %w", envPrefix, err)
		}
		cfg.TabRateRPS = f
	}
	if v := env("TAB_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sTAB_BURST: %w", envPrefix, err)
		}
		cfg.TabRateBurst = n
	}
	if v := env("SCREENSHOT_QUALITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSCREENSHOT_QUALITY: %w", envPrefix, err)
		}
		cfg.ScreenshotQuality = n
	}
	return nil
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

// applyFlags overrides cfg with flags the user actually set.
func applyFlags(cfg *Config, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	flags := cmd.Flags()

	if f := flags.Lookup("user-agent"); f != nil && f.Changed {
		cfg.UserAgent = f.Value.String()
	}
	if f := flags.Lookup("chrome-path"); f != nil && f.Changed {
		cfg.ChromePath = f.Value.String()
	}
	if f := flags.Lookup("remote"); f != nil && f.Changed {
		cfg.RemoteURL = f.Value.String()
	}
	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		d, err := time.ParseDuration(f.Value.String())
		if err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if f := flags.Lookup("json"); f != nil && f.Value.String() == "true" {
		cfg.JSONLog = true
	}
	if f := flags.Lookup("quiet"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "error"
	}
	if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "debug"
	}
	return nil
}

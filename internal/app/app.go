// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/law-makers/motorreg/internal/browser"
	"github.com/law-makers/motorreg/internal/config"
	"github.com/law-makers/motorreg/internal/extract"
	"github.com/law-makers/motorreg/internal/ratelimit"
	"github.com/law-makers/motorreg/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation. Use Close() to release any
// browser sessions it opened.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Extractor *extract.Extractor
	Limiter   ratelimit.RateLimiter

	mu        sync.Mutex
	sessions  []*browser.Session
	startTime time.Time
}

// New creates and initializes a new Application.
//
// It configures the global logger from cfg, then builds the extractor and
// the tab-switch limiter. Browsers are only started on demand by OpenSession.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := NewLogger(cfg, os.Stderr)
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	extractor := extract.New(&logger)

	limiter := ratelimit.NewOriginLimiter(cfg.TabRateRPS, cfg.TabRateBurst)
	logger.Debug().
		Float64("tab_rps", cfg.TabRateRPS).
		Int("tab_burst", cfg.TabRateBurst).
		Msg("Tab limiter initialized")

	return &Application{
		Config:    cfg,
		Logger:    &logger,
		Extractor: extractor,
		Limiter:   limiter,
		startTime: time.Now(),
	}, nil
}

// NewLogger builds the logger described by cfg, writing to w. Unknown levels
// fall back to warn.
func NewLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch cfg.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.JSONLog {
		w = zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// BrowserOptions translates the configuration into browser session options.
func (a *Application) BrowserOptions() browser.Options {
	return browser.Options{
		ChromePath:        a.Config.ChromePath,
		Headless:          a.Config.BrowserHeadless,
		UserAgent:         a.Config.UserAgent,
		ScreenshotQuality: a.Config.ScreenshotQuality,
		Limiter:           a.Limiter,
	}
}

// OpenSession returns a browser session for opts: a headless render of
// opts.RenderFile when set, otherwise a tab of the Chrome at opts.RemoteURL.
// Sessions are closed by Close.
func (a *Application) OpenSession(ctx context.Context, opts models.CaptureOptions) (*browser.Session, error) {
	var (
		s   *browser.Session
		err error
	)

	if opts.RenderFile != "" {
		s, err = browser.Launch(ctx, a.BrowserOptions())
		if err != nil {
			return nil, err
		}
		if err := s.Render(ctx, opts.RenderFile); err != nil {
			s.Close()
			return nil, err
		}
	} else {
		remote := opts.RemoteURL
		if remote == "" {
			remote = a.Config.RemoteURL
		}
		s, err = browser.Attach(ctx, remote, a.BrowserOptions())
		if err != nil {
			return nil, err
		}
	}

	a.mu.Lock()
	a.sessions = append(a.sessions, s)
	a.mu.Unlock()
	return s, nil
}

// Close shuts down every browser session the application opened.
func (a *Application) Close(ctx context.Context) error {
	a.mu.Lock()
	sessions := a.sessions
	a.sessions = nil
	a.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}

	a.Logger.Debug().
		Int("sessions", len(sessions)).
		Dur("uptime", a.Uptime()).
		Msg("Application shutdown complete")
	return ctx.Err()
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}

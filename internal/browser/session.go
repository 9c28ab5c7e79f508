// Package browser drives Chrome over the DevTools protocol to capture
// registry pages: either a tab the user already has open, or a saved page
// rendered by a headless instance.
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/motorreg/internal/ratelimit"
	"github.com/law-makers/motorreg/pkg/models"
	"github.com/rs/zerolog/log"
)

const (
	tabsetSelector = "#visKTTabset"
	tabLinkFormat  = "#li-visKTTabset-%d a"
)

// ErrNoPageTarget is returned by Attach when the browser has no open page.
var ErrNoPageTarget = errors.New("no open page in browser")

// Options configures how sessions are created.
type Options struct {
	ChromePath        string
	Headless          bool
	UserAgent         string
	ScreenshotQuality int
	// Limiter paces tab switches. Nil disables pacing.
	Limiter ratelimit.RateLimiter
}

// Session is one browser tab bound to a chromedp context.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	opts    Options
	// attached is set for tabs the user owns; closing the session must
	// leave them open.
	attached bool

	closeOnce sync.Once
}

// Attach connects to a running Chrome at remoteURL (a DevTools http or ws
// endpoint) and binds to its first open page.
func Attach(ctx context.Context, remoteURL string, opts Options) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, remoteURL)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	s := &Session{opts: opts, cancels: []context.CancelFunc{browserCancel, allocCancel}}

	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to list browser targets at %s: %w", remoteURL, err)
	}

	page := firstPage(targets)
	if page == nil {
		s.Close()
		return nil, ErrNoPageTarget
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(page.TargetID))
	s.ctx = tabCtx
	s.attached = true
	s.cancels = append([]context.CancelFunc{tabCancel}, s.cancels...)

	log.Debug().
		Str("remote", remoteURL).
		Str("target", string(page.TargetID)).
		Str("url", page.URL).
		Msg("Attached to browser tab")
	return s, nil
}

func firstPage(targets []*target.Info) *target.Info {
	for _, t := range targets {
		if t.Type == "page" && !strings.HasPrefix(t.URL, "devtools://") {
			return t
		}
	}
	return nil
}

// Launch starts a local Chrome and opens a blank tab.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, execAllocatorOptions(opts)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Debug().Msgf(format, args...)
		}),
	)
	s := &Session{ctx: tabCtx, opts: opts, cancels: []context.CancelFunc{tabCancel, allocCancel}}

	// Run with no actions starts the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Debug().Bool("headless", opts.Headless).Msg("Browser launched")
	return s, nil
}

// Render opens a saved page from the local filesystem. It never fetches
// anything over the network itself; the page's own relative assets are
// loaded from disk.
func (s *Session) Render(ctx context.Context, path string) error {
	u, err := FileURL(path)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := s.run(ctx, chromedp.Navigate(u), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	log.Debug().Str("url", u).Dur("elapsed", time.Since(start)).Msg("Page rendered")
	return nil
}

// SelectTab clicks the registry tab at index i and waits for the tab set
// to be ready again.
func (s *Session) SelectTab(ctx context.Context, i int) error {
	if i < 0 {
		return fmt.Errorf("invalid tab index %d", i)
	}

	if s.opts.Limiter != nil {
		var loc string
		if err := s.run(ctx, chromedp.Location(&loc)); err != nil {
			return fmt.Errorf("failed to read page location: %w", err)
		}
		if err := pace(ctx, s.opts.Limiter, loc); err != nil {
			return err
		}
	}

	sel := fmt.Sprintf(tabLinkFormat, i)
	err := s.run(ctx,
		chromedp.WaitReady(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
		chromedp.WaitReady(tabsetSelector, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to select tab %d: %w", i, err)
	}

	log.Debug().Int("tab", i).Msg("Tab selected")
	return nil
}

// pace takes a token for loc, waiting for one when none is free.
func pace(ctx context.Context, lim ratelimit.RateLimiter, loc string) error {
	if lim.Allow(loc) {
		return nil
	}

	log.Debug().Str("url", loc).Msg("Tab switch throttled")
	if err := lim.Wait(ctx, loc); err != nil {
		return fmt.Errorf("tab switch throttled: %w", err)
	}
	return nil
}

// Snapshot captures the current DOM and, when asked, a full-page screenshot.
func (s *Session) Snapshot(ctx context.Context, screenshot bool) (*models.Snapshot, error) {
	var (
		html string
		loc  string
		img  []byte
	)

	actions := []chromedp.Action{
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&loc),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if screenshot {
		actions = append(actions, chromedp.FullScreenshot(&img, s.quality()))
	}

	if err := s.run(ctx, actions...); err != nil {
		return nil, fmt.Errorf("failed to capture page: %w", err)
	}

	log.Debug().
		Str("url", loc).
		Int("html_bytes", len(html)).
		Int("screenshot_bytes", len(img)).
		Msg("Page captured")

	return &models.Snapshot{
		Source:     loc,
		HTML:       html,
		Screenshot: img,
		CapturedAt: time.Now(),
	}, nil
}

func (s *Session) quality() int {
	if s.opts.ScreenshotQuality <= 0 || s.opts.ScreenshotQuality > 100 {
		return 90
	}
	return s.opts.ScreenshotQuality
}

// run executes actions on the session tab, bounded by ctx.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// Close releases the tab context and its allocator. A tab obtained through
// Attach is detached and stays open. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.attached {
			detach(s.ctx)
		}
		for _, cancel := range s.cancels {
			cancel()
		}
		log.Debug().Msg("Browser session closed")
	})
}

// detach ends the DevTools session on the tab bound to ctx and forgets the
// target, so cancelling ctx no longer closes the tab.
func detach(ctx context.Context) {
	c := chromedp.FromContext(ctx)
	if c == nil || c.Target == nil {
		return
	}

	if c.Browser != nil && c.Target.SessionID != "" {
		dctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		err := target.DetachFromTarget().
			WithSessionID(c.Target.SessionID).
			Do(cdp.WithExecutor(dctx, c.Browser))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to detach from browser tab")
		}
	}
	c.Target = nil
}

// FileURL converts a local path to an absolute file:// URL.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}

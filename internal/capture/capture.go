// Package capture runs the extractor over one or more tabs of a live
// registry page and merges the results.
package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/motorreg/internal/extract"
	"github.com/law-makers/motorreg/internal/reqctx"
	"github.com/law-makers/motorreg/pkg/models"
)

// CurrentTab stands for "whatever tab is selected now" in a tab list.
const CurrentTab = -1

// ImageKeySuffix is appended to the tab name to form a screenshot key,
// e.g. vehicle_image.
const ImageKeySuffix = "_image"

// Page is the part of a browser session the pipeline drives.
type Page interface {
	SelectTab(ctx context.Context, i int) error
	Snapshot(ctx context.Context, screenshot bool) (*models.Snapshot, error)
}

// Run captures every tab in opts.Tabs in order and merges their records,
// later tabs winning on duplicate keys. An empty tab list captures the
// current tab only. The first tab without a selected title stops the run
// with extract.ErrTabNotFound.
func Run(ctx context.Context, page Page, x *extract.Extractor, opts models.CaptureOptions) (extract.Record, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	logger := reqctx.Logger(ctx)

	tabs := opts.Tabs
	if len(tabs) == 0 {
		tabs = []int{CurrentTab}
	}

	records := make([]extract.Record, 0, len(tabs))
	for _, i := range tabs {
		rec, err := captureTab(ctx, page, x, i, opts.Screenshot)
		if err != nil {
			logger.Debug().Int("tab", i).Err(err).Msg("Capture stopped")
			return nil, err
		}
		logger.Info().Int("tab", i).Int("keys", len(rec)).Msg("Tab captured")
		records = append(records, rec)
	}

	return extract.Merge(records...), nil
}

func captureTab(ctx context.Context, page Page, x *extract.Extractor, i int, screenshot bool) (extract.Record, error) {
	if i != CurrentTab {
		if err := page.SelectTab(ctx, i); err != nil {
			return nil, err
		}
	}

	snap, err := page.Snapshot(ctx, screenshot)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse captured page: %w", err)
	}

	tab, err := x.SelectedTab(doc)
	if err != nil {
		return nil, err
	}
	rec, err := x.Extract(doc)
	if err != nil {
		return nil, err
	}

	if screenshot && len(snap.Screenshot) > 0 {
		rec[ImageKey(tab)] = base64.StdEncoding.EncodeToString(snap.Screenshot)
	}
	return rec, nil
}

// ImageKey is the record key holding the screenshot of tab.
func ImageKey(tab extract.Tab) string {
	return tab.String() + ImageKeySuffix
}

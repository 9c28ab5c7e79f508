package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot is one captured registry page
type Snapshot struct {
	Source     string    `json:"source"`
	HTML       string    `json:"-"`
	Screenshot []byte    `json:"-"`
	CapturedAt time.Time `json:"captured_at"`
}

// Format defines the output encoding
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatTable    Format = "table"
)

// ParseFormat accepts a format name or common alias, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "table":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected json, csv, markdown or table)", s)
}

// FormatFromPath infers the format from a file extension.
// Unknown extensions fall back to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatJSON
}

// CaptureOptions contains options for capturing pages from Chrome
type CaptureOptions struct {
	RemoteURL  string
	RenderFile string
	Tabs       []int
	Screenshot bool
	Timeout    time.Duration
}

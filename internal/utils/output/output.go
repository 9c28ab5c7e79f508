// Package output encodes extraction results as JSON, CSV, Markdown or a terminal table.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/law-makers/motorreg/pkg/models"
)

// Write encodes v to w in the given format.
func Write(w io.Writer, format models.Format, v any) error {
	switch format {
	case models.FormatJSON, "":
		return WriteJSON(w, v)
	case models.FormatCSV:
		return WriteCSV(w, v)
	case models.FormatMarkdown:
		return WriteMarkdown(w, v)
	case models.FormatTable:
		return WriteTable(w, v)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// Save writes v to path. An empty format is inferred from the file extension.
func Save(path string, format models.Format, v any) error {
	if format == "" {
		format = models.FormatFromPath(path)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Write(file, format, v); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}
	return file.Close()
}

package output

import (
	"io"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// WriteMarkdown writes v as a GitHub-flavored Markdown table of its flattened fields.
func WriteMarkdown(w io.Writer, v any) error {
	rows, err := Flatten(v)
	if err != nil {
		return err
	}

	table, err := renderTable(rows)
	if err != nil {
		return err
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	mdStr, err := converter.ConvertString(table)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, strings.TrimSpace(mdStr)+"\n")
	return err
}

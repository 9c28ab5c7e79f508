package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable writes v's flattened fields as a rounded terminal table.
func WriteTable(w io.Writer, v any) error {
	rows, err := Flatten(v)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Key, r.Value})
	}
	t.Render()
	return nil
}

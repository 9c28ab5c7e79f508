package output

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes v as key,value rows. Nested objects are flattened into
// dotted keys and rows are sorted by key.
func WriteCSV(w io.Writer, v any) error {
	rows, err := Flatten(v)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"key", "value"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write([]string{r.Key, r.Value}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Row is one flattened key/value pair.
type Row struct {
	Key   string
	Value string
}

// Flatten normalizes v through its JSON form and returns one row per scalar
// leaf, keyed by the dotted path to it. A scalar at the top level is keyed "value".
func Flatten(v any) ([]Row, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to normalize output: %w", err)
	}

	var rows []Row
	flattenInto(&rows, "", tree)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows, nil
}

func flattenInto(rows *[]Row, prefix string, v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			flattenInto(rows, join(prefix, k), child)
		}
	case []any:
		for i, child := range t {
			flattenInto(rows, join(prefix, strconv.Itoa(i)), child)
		}
	default:
		key := prefix
		if key == "" {
			key = "value"
		}
		*rows = append(*rows, Row{Key: key, Value: scalar(t)})
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	}
	return fmt.Sprint(v)
}
